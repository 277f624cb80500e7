package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"liveserver/database"   //PostgreSQLとRedisの初期化
	"liveserver/handlers"   //各エンドポイントのハンドラー
	"liveserver/migrations" //テーブルのマイグレーション
	"liveserver/utils"      //ロガーの初期化とCronジョブ(放置ルームの解散)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		if err = migrations.AutoMigrateDB(db); err != nil {
			logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		// Redisはルーム一覧キャッシュにだけ使うため、失敗してもキャッシュなしで起動する
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Warn("Redisの初期化に失敗したためキャッシュなしで起動します", zap.Error(err))
			rdb = nil
		}
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //ここにデプロイサーバーのIPアドレスを設定
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})
	router.POST("/user/create", func(c *gin.Context) {
		handlers.UserCreate(c, db, logger)
	})
	router.GET("/user/me", func(c *gin.Context) {
		handlers.UserMe(c, db, logger)
	})
	router.POST("/user/update", func(c *gin.Context) {
		handlers.UserUpdate(c, db, logger)
	})
	router.POST("/room/create", func(c *gin.Context) {
		handlers.RoomCreate(c, db, logger)
	})
	router.POST("/room/list", func(c *gin.Context) {
		handlers.RoomList(c, db, rdb, logger)
	})
	router.POST("/room/join", func(c *gin.Context) {
		handlers.RoomJoin(c, db, logger)
	})
	router.POST("/room/wait", func(c *gin.Context) {
		handlers.RoomWait(c, db, logger)
	})
	router.POST("/room/start", func(c *gin.Context) {
		handlers.RoomStart(c, db, logger)
	})
	router.POST("/room/end", func(c *gin.Context) {
		handlers.RoomEnd(c, db, logger)
	})
	router.POST("/room/result", func(c *gin.Context) {
		handlers.RoomResult(c, db, logger)
	})
	router.POST("/room/leave", func(c *gin.Context) {
		handlers.RoomLeave(c, db, logger)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()
}
