package rooms

import (
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Leave ルームから退室します。退室できるのは待機中のルームだけです。
// 最後の1人が抜けたルームは解散し、ホストが抜けた場合は参加が最も早い
// 残メンバー（メンバー行のidが最小のもの）へホスト権限を引き継ぎます。
func Leave(db *gorm.DB, roomID uint, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.Status != models.Waiting {
			return ErrRoomState
		}

		result := tx.Where("room_id = ? AND user_id = ?", roomID, userID).
			Delete(&models.RoomMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}

		var count int64
		if err := tx.Model(&models.RoomMember{}).
			Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			// 無人になったルームは解散する
			return tx.Model(&room).Update("status", models.Dissolution).Error
		}
		if room.OwnerID == userID {
			var next models.RoomMember
			if err := tx.Where("room_id = ?", roomID).
				Order("id ASC").First(&next).Error; err != nil {
				return err
			}
			return tx.Model(&room).Update("owner_id", next.UserID).Error
		}
		return nil
	})
}
