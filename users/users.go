package users

import (
	"errors"

	"liveserver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUserNotFound 指定されたトークンに対応するユーザーが存在しない
var ErrUserNotFound = errors.New("user not found")

// トークン衝突時の再生成回数の上限
const maxTokenRetries = 3

// CreateUser 新規ユーザーを登録し、発行したトークンを返します。
// トークンはUUIDで生成しますが一意性は保証されないため、
// 一意制約違反を検出したら再生成してリトライします。
func CreateUser(db *gorm.DB, logger *zap.Logger, name string, leaderCardID int) (string, error) {
	var lastErr error
	for i := 0; i < maxTokenRetries; i++ {
		token := uuid.NewString()
		user := models.User{Name: name, Token: token, LeaderCardID: leaderCardID}
		err := db.Create(&user).Error
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
		logger.Warn("ユーザートークンが衝突したため再生成します", zap.Int("retry", i+1))
		lastErr = err
	}
	return "", lastErr
}

// GetUserByToken トークンからユーザーを取得します。
func GetUserByToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	if err := db.Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser 表示名とリーダーカードを更新します。
func UpdateUser(db *gorm.DB, token string, name string, leaderCardID int) error {
	result := db.Model(&models.User{}).Where("token = ?", token).
		Updates(map[string]interface{}{"name": name, "leader_card_id": leaderCardID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
