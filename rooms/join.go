package rooms

import (
	"errors"

	"liveserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Join ルームへの参加を試みます。満員・解散済みといった参加できない
// ケースはエラーではなくJoinRoomResultで返し、エラーを返すのはDB障害のみです。
//
// ルーム行をFOR UPDATEでロックしてから人数を数えることで、同じルームへの
// 同時参加リクエスト同士を直列化します。ロックなしでは2つのリクエストが
// 同時に「空きあり」と判定してMaxUserCountを超過しうるため、
// このカウント→挿入の順序がトランザクション内で崩れないことが要です。
func Join(db *gorm.DB, roomID uint, userID uint, difficulty models.LiveDifficulty) (models.JoinRoomResult, error) {
	result := models.JoinOtherError
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = models.JoinOtherError
				return nil
			}
			return err
		}
		if room.Status != models.Waiting {
			result = models.JoinDisbanded
			return nil
		}
		if room.OwnerID == userID {
			// 作成者自身の二重参加ガード
			result = models.JoinOtherError
			return nil
		}

		var count int64
		if err := tx.Model(&models.RoomMember{}).
			Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxUserCount {
			result = models.JoinRoomFull
			return nil
		}

		member := models.RoomMember{RoomID: roomID, UserID: userID, Difficulty: difficulty}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 既に参加しているユーザー
				result = models.JoinOtherError
				return nil
			}
			return err
		}
		result = models.JoinOK
		return nil
	})
	if err != nil {
		return models.JoinOtherError, err
	}
	return result, nil
}
