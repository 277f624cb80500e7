package models

// ルーム一覧画面に表示する1ルーム分の情報
type RoomInfo struct {
	RoomID          uint `json:"room_id"`
	LiveID          uint `json:"live_id"`
	JoinedUserCount int  `json:"joined_user_count"`
	MaxUserCount    int  `json:"max_user_count"`
}

// ルーム待機画面に表示するメンバー情報
type RoomUser struct {
	UserID           uint           `json:"user_id"`
	Name             string         `json:"name"`
	LeaderCardID     int            `json:"leader_card_id"`
	SelectDifficulty LiveDifficulty `json:"select_difficulty"`
	IsMe             bool           `json:"is_me"`
	IsHost           bool           `json:"is_host"`
}

// リザルト画面に表示するメンバーごとの成績
type ResultUser struct {
	UserID         uint  `json:"user_id"`
	JudgeCountList []int `json:"judge_count_list"`
	Score          int   `json:"score"`
}
