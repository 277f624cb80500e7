package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"liveserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 一覧キャッシュのTTL。待機中ルームの人数表示は多少古くてもよい。
const listCacheTTL = time.Second

// List 参加者を待っているルームの一覧を返します。liveID=0は全曲指定。
// rdbが渡されていればRedisに短時間キャッシュします（キャッシュ障害は無視）。
func List(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, liveID uint) ([]models.RoomInfo, error) {
	cacheKey := fmt.Sprintf("roomlist:%d", liveID)
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var infos []models.RoomInfo
			if err := json.Unmarshal([]byte(cached), &infos); err == nil {
				return infos, nil
			}
			logger.Warn("ルーム一覧キャッシュのデコードに失敗しました", zap.String("key", cacheKey))
		}
	}

	query := db.Model(&models.Room{}).
		Select("rooms.id AS room_id, rooms.live_id, COUNT(room_members.id) AS joined_user_count").
		Joins("LEFT JOIN room_members ON room_members.room_id = rooms.id").
		Where("rooms.status = ?", models.Waiting).
		Group("rooms.id")
	if liveID != 0 {
		query = query.Where("rooms.live_id = ?", liveID)
	}

	infos := []models.RoomInfo{}
	if err := query.Scan(&infos).Error; err != nil {
		return nil, err
	}
	for i := range infos {
		infos[i].MaxUserCount = models.MaxUserCount
	}

	if rdb != nil {
		if data, err := json.Marshal(infos); err == nil {
			if err := rdb.Set(ctx, cacheKey, data, listCacheTTL).Err(); err != nil {
				logger.Warn("ルーム一覧のキャッシュ保存に失敗しました", zap.Error(err))
			}
		}
	}
	return infos, nil
}
