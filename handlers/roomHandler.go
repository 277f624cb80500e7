package handlers

import (
	"errors"
	"net/http"

	"liveserver/middlewares"
	"liveserver/models"
	"liveserver/rooms"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomCreateRequest struct {
	LiveID           uint                  `json:"live_id"`
	SelectDifficulty models.LiveDifficulty `json:"select_difficulty"`
}

type RoomListRequest struct {
	LiveID uint `json:"live_id"`
}

type RoomJoinRequest struct {
	RoomID           uint                  `json:"room_id"`
	SelectDifficulty models.LiveDifficulty `json:"select_difficulty"`
}

type RoomIDRequest struct {
	RoomID uint `json:"room_id"`
}

type RoomEndRequest struct {
	RoomID         uint  `json:"room_id"`
	JudgeCountList []int `json:"judge_count_list"`
	Score          int   `json:"score"`
}

// roomsパッケージのエラーをHTTPステータスとメッセージに対応づける
func roomErrorResponse(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ルームが見つかりません"})
	case errors.Is(err, rooms.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ルームのメンバーではありません"})
	case errors.Is(err, rooms.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "ホストのみ実行できます"})
	case errors.Is(err, rooms.ErrRoomState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ルームの状態が不正です"})
	default:
		logger.Error("Room operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "サーバー内部エラー"})
	}
}

// RoomCreate 新規ルームを作成し、作成者をホストとして参加させます。
func RoomCreate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room create request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomID, err := rooms.Create(db, user.ID, request.LiveID, request.SelectDifficulty)
	if err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_id": roomID})
}

// RoomList 指定された曲の待機中ルーム一覧を返します。live_id=0は全曲。
// 認証不要で、短時間のキャッシュを許容します。
func RoomList(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	var request RoomListRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room list request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	infos, err := rooms.List(c.Request.Context(), db, rdb, logger, request.LiveID)
	if err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_info_list": infos})
}

// RoomJoin ルームへの参加を試み、結果を列挙値で返します。
// 満員や解散済みも200で返し、join_room_resultで区別します。
func RoomJoin(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomJoinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room join request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := rooms.Join(db, request.RoomID, user.ID, request.SelectDifficulty)
	if err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"join_room_result": result})
}

// RoomWait 待機画面用にルームの状態とメンバー一覧を返します。
func RoomWait(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomIDRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room wait request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, roomUsers, err := rooms.Wait(db, request.RoomID, user.ID)
	if err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"room_user_list": roomUsers,
	})
}

// RoomStart ホストがライブを開始します。
func RoomStart(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomIDRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room start request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rooms.Start(db, user.ID, request.RoomID); err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// RoomEnd プレイ結果を記録します。最初の1人の送信でルームは解散します。
func RoomEnd(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomEndRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room end request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rooms.Finish(db, user.ID, request.RoomID, request.JudgeCountList, request.Score); err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// RoomResult 解散済みルームの成績一覧を返します。認証不要です。
func RoomResult(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var request RoomIDRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room result request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := rooms.Result(db, request.RoomID)
	if err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result_user_list": results})
}

// RoomLeave ルームから退室します。
func RoomLeave(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	user, err := middlewares.GetUserFromToken(c, db, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	var request RoomIDRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room leave request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rooms.Leave(db, request.RoomID, user.ID); err != nil {
		roomErrorResponse(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
