package rooms

import (
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Start ライブを開始します。待機中のルームに対してホスト本人だけが
// 実行でき、ルームはLiveStartへ遷移します。
func Start(db *gorm.DB, userID uint, roomID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.OwnerID != userID {
			return ErrNotOwner
		}
		if room.Status != models.Waiting {
			return ErrRoomState
		}
		return tx.Model(&room).Update("status", models.LiveStart).Error
	})
}
