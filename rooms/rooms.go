package rooms

import (
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
)

var (
	// ErrRoomNotFound 指定されたルームが存在しない
	ErrRoomNotFound = errors.New("room not found")
	// ErrMemberNotFound 指定されたユーザーがルームのメンバーではない
	ErrMemberNotFound = errors.New("room member not found")
	// ErrNotOwner ホストにしか許可されていない操作をホスト以外が行った
	ErrNotOwner = errors.New("not the room owner")
	// ErrRoomState 現在のルーム状態では行えない操作
	ErrRoomState = errors.New("invalid room state")
)

// Create 新規ルームを作成し、作成者をホスト兼最初のメンバーとして登録します。
// ルーム行とメンバー行は同一トランザクションで挿入します。
func Create(db *gorm.DB, ownerID uint, liveID uint, difficulty models.LiveDifficulty) (uint, error) {
	var roomID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		room := models.Room{LiveID: liveID, OwnerID: ownerID, Status: models.Waiting}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		member := models.RoomMember{RoomID: room.ID, UserID: ownerID, Difficulty: difficulty}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		roomID = room.ID
		return nil
	})
	return roomID, err
}
