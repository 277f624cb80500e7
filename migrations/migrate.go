package migrations

import (
	"liveserver/models"

	"gorm.io/gorm"
)

// AutoMigrateDB user・room・room_memberの各テーブルを作成・更新します。
// サーバー起動時に呼び出します。
func AutoMigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Room{}, &models.RoomMember{})
}
