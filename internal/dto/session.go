package dto

// ── 赛段模块 DTO ──

// CreateSessionRequest 创建赛段请求
type CreateSessionRequest struct {
	Name      string  `json:"name"       binding:"required,min=1,max=100"`
	Type      string  `json:"type"       binding:"required,oneof=preliminary semi_final final"`
	StartTime *string `json:"start_time"` // RFC3339
	EndTime   *string `json:"end_time"`
}

// UpdateSessionRequest 更新赛段请求
type UpdateSessionRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	Type      *string `json:"type"       binding:"omitempty,oneof=preliminary semi_final final"`
	Status    *string `json:"status"     binding:"omitempty,oneof=pending ongoing finished"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// SessionResponse 赛段信息响应
type SessionResponse struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	CreatedAt   string `json:"created_at"`
}
