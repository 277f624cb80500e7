package rooms

import (
	"encoding/json"
	"errors"
	"fmt"

	"liveserver/models"

	"gorm.io/gorm"
)

// Result 解散済みルームのメンバーごとの成績を返します。リザルト未送信の
// メンバーは一覧に含めません。クライアントはポーリングして一覧が
// 揃うのを待つ想定なので、このクエリはロックを取りません。
func Result(db *gorm.DB, roomID uint) ([]models.ResultUser, error) {
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.Status != models.Dissolution {
		return nil, ErrRoomState
	}

	var members []models.RoomMember
	if err := db.Where("room_id = ? AND judge_count_list <> '' AND score IS NOT NULL", roomID).
		Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	results := make([]models.ResultUser, 0, len(members))
	for _, member := range members {
		var judgeCounts []int
		if err := json.Unmarshal([]byte(member.JudgeCountList), &judgeCounts); err != nil {
			return nil, fmt.Errorf("judge_count_listのデコードに失敗しました: %w", err)
		}
		results = append(results, models.ResultUser{
			UserID:         member.UserID,
			JudgeCountList: judgeCounts,
			Score:          *member.Score,
		})
	}
	return results, nil
}
