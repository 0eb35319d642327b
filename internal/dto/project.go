package dto

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	SessionID string            `json:"session_id" binding:"required,uuid"`
	Name      string            `json:"name"       binding:"required,min=1,max=200"`
	FormData  map[string]string `json:"form_data"`
}

// UpdateProjectRequest 更新项目请求（仅 draft 状态可改）
type UpdateProjectRequest struct {
	Name     *string           `json:"name"      binding:"omitempty,min=1,max=200"`
	FormData map[string]string `json:"form_data"`
}

// ProjectResponse 项目信息响应
type ProjectResponse struct {
	ID            string            `json:"id"`
	HackathonID   string            `json:"hackathon_id"`
	SessionID     string            `json:"session_id"`
	Name          string            `json:"name"`
	SubmitterID   string            `json:"submitter_id"`
	SubmitterName string            `json:"submitter_name,omitempty"`
	Status        string            `json:"status"`
	FormData      map[string]string `json:"form_data,omitempty"`
	CreatedAt     string            `json:"created_at"`
}
