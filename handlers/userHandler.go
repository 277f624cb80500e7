package handlers

import (
	"errors"
	"net/http"

	"liveserver/middlewares"
	"liveserver/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ユーザー作成・更新で共通のリクエストボディ
type UserCreateRequest struct {
	UserName     string `json:"user_name"`
	LeaderCardID int    `json:"leader_card_id"`
}

// UserCreate 新規ユーザーを登録し、認証用トークンを返します。
// このエンドポイントだけは認証なしで呼び出せます。
func UserCreate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var request UserCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("User create request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := users.CreateUser(db, logger, request.UserName, request.LeaderCardID)
	if err != nil {
		logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザーの作成に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_token": token})
}

// UserMe トークンに対応するユーザー自身のプロフィールを返します。
// トークン未指定は401、トークンに対応するユーザーがいない場合は404です。
func UserMe(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ユーザーが見つかりません"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"leader_card_id": user.LeaderCardID,
	})
}

// UserUpdate 表示名とリーダーカードを更新します。
func UserUpdate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request UserCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("User update request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := users.UpdateUser(db, user.Token, request.UserName, request.LeaderCardID); err != nil {
		logger.Error("Failed to update user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザーの更新に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
