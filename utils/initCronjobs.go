package utils

import (
	"time"

	"liveserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CronCleaner 放置されたルームを定期的に解散させるジョブを起動します。
// 24時間更新のない待機中・ライブ中ルームをDissolutionに更新します。
// ルーム行そのものは削除しません（解散済みルームのリザルト参照を残すため）。
func CronCleaner(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		logger.Info("放置ルームの解散処理を開始")
		result := db.Model(&models.Room{}).
			Where("status IN ? AND updated_at <= ?",
				[]models.WaitRoomStatus{models.Waiting, models.LiveStart},
				time.Now().Add(-24*time.Hour)).
			Update("status", models.Dissolution)
		if result.Error != nil {
			logger.Error("放置ルームの解散に失敗しました", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			logger.Info("放置ルームを解散しました", zap.Int64("rooms", result.RowsAffected))
		}
	})

	c.Start()
}
