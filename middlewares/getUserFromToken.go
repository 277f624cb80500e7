package middlewares

import (
	"errors"
	"strings"

	"liveserver/models"
	"liveserver/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrTokenRequired Authorizationヘッダーにトークンが入っていない
var ErrTokenRequired = errors.New("token is required")

// GetUserFromToken リクエストのBearerトークンを取り出し、対応する
// ユーザーを返します。トークン未指定・未知のトークンはエラーです。
func GetUserFromToken(c *gin.Context, db *gorm.DB, logger *zap.Logger) (*models.User, error) {
	// トークンをリクエストヘッダーから取得
	tokenString := c.GetHeader("Authorization")

	// Bearerトークンのプレフィックスを確認し、存在する場合は削除
	if strings.HasPrefix(tokenString, "Bearer ") {
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}

	if tokenString == "" {
		return nil, ErrTokenRequired
	}

	user, err := users.GetUserByToken(db, tokenString)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			logger.Error("Failed to resolve user from token", zap.Error(err))
		}
		return nil, err
	}
	return user, nil
}
