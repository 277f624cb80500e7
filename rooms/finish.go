package rooms

import (
	"encoding/json"
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Finish 呼び出したメンバーのプレイ結果を記録し、ルームを解散状態へ
// 遷移させます。最初にリザルトを送ったメンバーの時点でルーム全体が
// 解散扱いになります（全員のプレイは同時に始まり同時に終わる前提）。
// 2人目以降のリザルトは解散済みルームに対してそのまま記録されます。
// ライブが始まっていない（Waitingの）ルームへは送れません。
func Finish(db *gorm.DB, userID uint, roomID uint, judgeCounts []int, score int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.Status == models.Waiting {
			return ErrRoomState
		}

		// 判定数の並びはそのまま保存してそのまま返す必要があるため、
		// JSON配列としてメンバー行に保持する
		encoded, err := json.Marshal(judgeCounts)
		if err != nil {
			return err
		}
		result := tx.Model(&models.RoomMember{}).
			Where("room_id = ? AND user_id = ?", roomID, userID).
			Updates(map[string]interface{}{
				"judge_count_list": string(encoded),
				"score":            score,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}

		if room.Status != models.Dissolution {
			return tx.Model(&room).Update("status", models.Dissolution).Error
		}
		return nil
	})
}
