package rooms

import (
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
)

// Wait ルームの状態と参加メンバーの一覧を返します。ルーム・メンバー・
// プロフィールを1つのトランザクションで読み、整合した断面を返します。
// is_meはrequesterID、is_hostはルームのOwnerIDとの比較で付与します。
func Wait(db *gorm.DB, roomID uint, requesterID uint) (models.WaitRoomStatus, []models.RoomUser, error) {
	var status models.WaitRoomStatus
	roomUsers := []models.RoomUser{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		status = room.Status

		var rows []struct {
			UserID       uint
			Name         string
			LeaderCardID int
			Difficulty   models.LiveDifficulty
		}
		if err := tx.Model(&models.RoomMember{}).
			Select("room_members.user_id, users.name, users.leader_card_id, room_members.difficulty").
			Joins("JOIN users ON users.id = room_members.user_id").
			Where("room_members.room_id = ?", roomID).
			Order("room_members.id ASC").
			Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			roomUsers = append(roomUsers, models.RoomUser{
				UserID:           row.UserID,
				Name:             row.Name,
				LeaderCardID:     row.LeaderCardID,
				SelectDifficulty: row.Difficulty,
				IsMe:             row.UserID == requesterID,
				IsHost:           row.UserID == room.OwnerID,
			})
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return status, roomUsers, nil
}
