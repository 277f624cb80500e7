package rooms_test

import (
	"fmt"
	"sync"
	"testing"

	"liveserver/models"
	"liveserver/rooms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinUnknownRoom(t *testing.T) {
	db := newTestDB(t)
	joiner := createTestUser(t, db, "bob")

	result, err := rooms.Join(db, 9999, joiner, models.DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, models.JoinOtherError, result)
}

func TestJoinByOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)

	result, err := rooms.Join(db, roomID, owner, models.DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, models.JoinOtherError, result)
}

func TestJoinTwiceBySameUser(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)

	result, err := rooms.Join(db, roomID, joiner, models.DifficultyNormal)
	require.NoError(t, err)
	require.Equal(t, models.JoinOK, result)

	result, err = rooms.Join(db, roomID, joiner, models.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, models.JoinOtherError, result)
}

func TestJoinDissolvedRoom(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)
	// ホストが退室して無人になり解散
	require.NoError(t, rooms.Leave(db, roomID, owner))

	result, err := rooms.Join(db, roomID, joiner, models.DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, models.JoinDisbanded, result)
}

func TestJoinStartedRoom(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)
	require.NoError(t, rooms.Start(db, owner, roomID))

	result, err := rooms.Join(db, roomID, joiner, models.DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, models.JoinDisbanded, result)
}

func TestJoinCapacity(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)

	// ホストを含めて4人まで入れる
	for i := 0; i < models.MaxUserCount-1; i++ {
		joiner := createTestUser(t, db, fmt.Sprintf("joiner%d", i))
		result, err := rooms.Join(db, roomID, joiner, models.DifficultyNormal)
		require.NoError(t, err)
		assert.Equal(t, models.JoinOK, result)
	}

	extra := createTestUser(t, db, "extra")
	result, err := rooms.Join(db, roomID, extra, models.DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, models.JoinRoomFull, result)
}

// 同じルームへ同時に参加しても定員を超えないこと。
// ホストの分を除いた3人だけがJoinOKになり、残りは全員JoinRoomFullになる。
func TestJoinConcurrent(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")

	roomID, err := rooms.Create(db, owner, 100, models.DifficultyNormal)
	require.NoError(t, err)

	const joiners = 8
	ids := make([]uint, joiners)
	for i := range ids {
		ids[i] = createTestUser(t, db, fmt.Sprintf("joiner%d", i))
	}

	results := make([]models.JoinRoomResult, joiners)
	errs := make([]error, joiners)
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rooms.Join(db, roomID, ids[i], models.DifficultyNormal)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "joiner %d", i)
	}

	okCount, fullCount := 0, 0
	for _, result := range results {
		switch result {
		case models.JoinOK:
			okCount++
		case models.JoinRoomFull:
			fullCount++
		}
	}
	assert.Equal(t, models.MaxUserCount-1, okCount)
	assert.Equal(t, joiners-(models.MaxUserCount-1), fullCount)

	var count int64
	require.NoError(t, db.Model(&models.RoomMember{}).
		Where("room_id = ?", roomID).Count(&count).Error)
	assert.EqualValues(t, models.MaxUserCount, count)
}
