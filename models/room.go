package models

import (
	"time"

	"gorm.io/gorm"
)

// ルームの最大参加人数（ホストを含む）
const MaxUserCount = 4

// ルームの状態。クライアントとは整数値でやり取りする。
type WaitRoomStatus int

const (
	Waiting     WaitRoomStatus = 1 // ホストがライブ開始するのを待っている
	LiveStart   WaitRoomStatus = 2 // ライブ中
	Dissolution WaitRoomStatus = 3 // 解散済み
)

// 選択難易度
type LiveDifficulty int

const (
	DifficultyNormal LiveDifficulty = 1
	DifficultyHard   LiveDifficulty = 2
)

// ルーム参加の結果。参加失敗は例外ではなく通常のレスポンスとして返す。
type JoinRoomResult int

const (
	JoinOK         JoinRoomResult = 1
	JoinRoomFull   JoinRoomResult = 2
	JoinDisbanded  JoinRoomResult = 3
	JoinOtherError JoinRoomResult = 4
)

// Room モデルの定義。解散しても行は残し、Statusだけを変更する。
type Room struct {
	gorm.Model
	LiveID  uint           `gorm:"not null"`
	OwnerID uint           `gorm:"not null"`
	Status  WaitRoomStatus `gorm:"not null;default:1"`
}

// RoomMember モデルの定義。退室時は物理削除するためgorm.Modelを使わない
// （DeletedAtの残骸がroom_id+user_idの一意制約に引っかかり再入室できなくなる）。
type RoomMember struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	RoomID         uint           `gorm:"not null;uniqueIndex:idx_room_member"`
	UserID         uint           `gorm:"not null;uniqueIndex:idx_room_member"`
	Difficulty     LiveDifficulty `gorm:"not null"`
	JudgeCountList string         // リザルト送信まで空。判定数をJSONの整数配列で保持
	Score          *int           // リザルト送信まで未設定。JudgeCountListと必ず同時に設定する
}
