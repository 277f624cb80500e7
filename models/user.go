package models

import (
	"gorm.io/gorm"
)

// User モデルの定義。Tokenはクライアントに発行する不透明な認証トークンで、
// 一意制約により衝突を検出する（生成側でリトライする前提）。
type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Token        string `gorm:"uniqueIndex;not null"`
	LeaderCardID int    `gorm:"not null"`
}
