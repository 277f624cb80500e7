package users_test

import (
	"testing"

	"liveserver/migrations"
	"liveserver/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, migrations.AutoMigrateDB(db))
	return db
}

func TestCreateUserAndResolve(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	token, err := users.CreateUser(db, logger, "alice", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := users.GetUserByToken(db, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, 42, user.LeaderCardID)
	assert.NotZero(t, user.ID)
}

func TestGetUserByUnknownToken(t *testing.T) {
	db := newTestDB(t)

	_, err := users.GetUserByToken(db, "no-such-token")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestTokensAreUnique(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	tokenA, err := users.CreateUser(db, logger, "alice", 1)
	require.NoError(t, err)
	tokenB, err := users.CreateUser(db, logger, "bob", 2)
	require.NoError(t, err)
	assert.NotEqual(t, tokenA, tokenB)
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	token, err := users.CreateUser(db, logger, "alice", 1)
	require.NoError(t, err)

	require.NoError(t, users.UpdateUser(db, token, "alicia", 99))

	user, err := users.GetUserByToken(db, token)
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Name)
	assert.Equal(t, 99, user.LeaderCardID)
}

func TestUpdateUserUnknownToken(t *testing.T) {
	db := newTestDB(t)

	err := users.UpdateUser(db, "no-such-token", "name", 1)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
