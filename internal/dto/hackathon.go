package dto

// ── 黑客松模块 DTO ──

// CreateHackathonRequest 创建黑客松请求
type CreateHackathonRequest struct {
	Title       string  `json:"title"       binding:"required,min=2,max=200"`
	Description string  `json:"description" binding:"max=10000"`
	StartDate   *string `json:"start_date"` // "2026-09-01T09:00:00Z"
	EndDate     *string `json:"end_date"`
}

// UpdateHackathonRequest 更新黑客松请求
type UpdateHackathonRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Status      *string `json:"status"      binding:"omitempty,oneof=draft upcoming active judging completed"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// CriterionInput 评分标准输入
type CriterionInput struct {
	Name     string `json:"name"      binding:"required,min=1,max=100"`
	MaxScore int    `json:"max_score"`
}

// UpdateCriteriaRequest 整体替换评分标准请求
type UpdateCriteriaRequest struct {
	Criteria []CriterionInput `json:"criteria" binding:"required,dive"`
}

// FieldDescriptorInput 报名表单字段输入
type FieldDescriptorInput struct {
	ID       string `json:"id"       binding:"required,min=1,max=64"`
	Label    string `json:"label"    binding:"required,min=1,max=200"`
	Type     string `json:"type"     binding:"required,oneof=text textarea url"`
	Required bool   `json:"required"`
}

// UpdateSubmissionFieldsRequest 整体替换报名表单字段请求
type UpdateSubmissionFieldsRequest struct {
	Fields []FieldDescriptorInput `json:"fields" binding:"required,dive"`
}

// CriterionResponse 评分标准响应
type CriterionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxScore int    `json:"max_score"`
}

// HackathonResponse 黑客松信息响应
type HackathonResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           string                 `json:"status"`
	StartDate        string                 `json:"start_date,omitempty"`
	EndDate          string                 `json:"end_date,omitempty"`
	OrganizerID      string                 `json:"organizer_id"`
	Criteria         []CriterionResponse    `json:"criteria"`
	RubricValid      bool                   `json:"rubric_valid"`
	SubmissionFields []FieldDescriptorInput `json:"submission_fields"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
}
