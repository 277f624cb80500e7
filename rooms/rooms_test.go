package rooms_test

import (
	"context"
	"testing"

	"liveserver/migrations"
	"liveserver/models"
	"liveserver/rooms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func zapNop() *zap.Logger {
	return zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// インメモリDBは接続ごとに別インスタンスになるため1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, migrations.AutoMigrateDB(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	user := models.User{Name: name, Token: "token-" + name, LeaderCardID: 1}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestCreateThenWait(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyHard)
	require.NoError(t, err)
	require.NotZero(t, roomID)

	status, members, err := rooms.Wait(db, roomID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.Waiting, status)
	require.Len(t, members, 1)
	assert.Equal(t, owner, members[0].UserID)
	assert.Equal(t, "alice", members[0].Name)
	assert.Equal(t, models.DifficultyHard, members[0].SelectDifficulty)
	assert.True(t, members[0].IsMe)
	assert.True(t, members[0].IsHost)
}

func TestWaitRoomNotFound(t *testing.T) {
	db := newTestDB(t)
	requester := createTestUser(t, db, "alice")

	_, _, err := rooms.Wait(db, 9999, requester)
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestWaitFlagsForJoiner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyHard)
	require.NoError(t, err)
	result, err := rooms.Join(db, roomID, joiner, models.DifficultyNormal)
	require.NoError(t, err)
	require.Equal(t, models.JoinOK, result)

	_, members, err := rooms.Wait(db, roomID, joiner)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// 参加順で返る。ホストが先頭、参加者が2番目
	assert.True(t, members[0].IsHost)
	assert.False(t, members[0].IsMe)
	assert.False(t, members[1].IsHost)
	assert.True(t, members[1].IsMe)
	assert.Equal(t, models.DifficultyNormal, members[1].SelectDifficulty)
}

func TestList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner1 := createTestUser(t, db, "alice")
	owner2 := createTestUser(t, db, "bob")
	joiner := createTestUser(t, db, "carol")

	room1, err := rooms.Create(db, owner1, 100, models.DifficultyNormal)
	require.NoError(t, err)
	room2, err := rooms.Create(db, owner2, 200, models.DifficultyNormal)
	require.NoError(t, err)

	result, err := rooms.Join(db, room1, joiner, models.DifficultyHard)
	require.NoError(t, err)
	require.Equal(t, models.JoinOK, result)

	// live_id指定で絞り込み
	infos, err := rooms.List(ctx, db, nil, zapNop(), 100)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, room1, infos[0].RoomID)
	assert.Equal(t, uint(100), infos[0].LiveID)
	assert.Equal(t, 2, infos[0].JoinedUserCount)
	assert.Equal(t, models.MaxUserCount, infos[0].MaxUserCount)

	// live_id=0は全曲のルームを返す
	infos, err = rooms.List(ctx, db, nil, zapNop(), 0)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	// ライブが始まったルームは一覧に出ない
	require.NoError(t, rooms.Start(db, owner2, room2))
	infos, err = rooms.List(ctx, db, nil, zapNop(), 0)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, room1, infos[0].RoomID)
}
