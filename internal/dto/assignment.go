package dto

// ── 评审分配模块 DTO ──

// CreateAssignmentRequest 创建单条评审分配请求
type CreateAssignmentRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	ProjectID string `json:"project_id" binding:"required,uuid"`
	JudgeID   string `json:"judge_id"   binding:"required,uuid"`
}

// BulkAssignRequest 批量分配请求：为一位评委分配多个项目
type BulkAssignRequest struct {
	SessionID  string   `json:"session_id"  binding:"required,uuid"`
	JudgeID    string   `json:"judge_id"    binding:"required,uuid"`
	ProjectIDs []string `json:"project_ids" binding:"required,min=1,dive,uuid"`
}

// BulkAssignResponse 批量分配结果
type BulkAssignResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"` // 已存在分配，静默跳过
}

// AssignmentResponse 评审分配响应
type AssignmentResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	JudgeID     string `json:"judge_id"`
	JudgeName   string `json:"judge_name,omitempty"`
	Status      string `json:"status"`
	TotalScore  *int   `json:"total_score,omitempty"`
	Comment     string `json:"comment,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ── 评分提交 DTO ──

// CriterionScoreInput 单项评分输入
type CriterionScoreInput struct {
	CriterionID string `json:"criterion_id" binding:"required,uuid"`
	Score       int    `json:"score"`
}

// SubmitScoreRequest 评分提交请求
// 提交后分配状态置为 completed，totalScore 一次性写入
type SubmitScoreRequest struct {
	Scores  []CriterionScoreInput `json:"scores"  binding:"required,min=1,dive"`
	Comment string                `json:"comment" binding:"max=5000"`
}

// ScoreDetailResponse 评分明细响应
type ScoreDetailResponse struct {
	AssignmentID string               `json:"assignment_id"`
	Status       string               `json:"status"`
	TotalScore   *int                 `json:"total_score,omitempty"`
	Comment      string               `json:"comment"`
	Scores       []CriterionScoreItem `json:"scores"`
}

// CriterionScoreItem 评分明细中的单项
type CriterionScoreItem struct {
	CriterionID   string `json:"criterion_id"`
	CriterionName string `json:"criterion_name,omitempty"`
	MaxScore      int    `json:"max_score,omitempty"`
	Score         int    `json:"score"`
}
