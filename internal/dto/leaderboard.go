package dto

// ── 排行榜模块 DTO ──

// LeaderboardEntryInput 排行榜条目输入（管理端保存）
type LeaderboardEntryInput struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
	Rank      int    `json:"rank"       binding:"required,min=1"`
	Award     string `json:"award"      binding:"max=200"`
}

// SaveLeaderboardRequest 保存排行榜请求
// 条目列表与发布标志原子保存，不存在单独的"仅发布"操作
type SaveLeaderboardRequest struct {
	Entries   []LeaderboardEntryInput `json:"entries"`
	Published bool                    `json:"published"`
}

// LeaderboardEntryResponse 排行榜条目响应
type LeaderboardEntryResponse struct {
	ProjectID     string  `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	SubmitterName string  `json:"submitter_name,omitempty"`
	Rank          int     `json:"rank"`
	Award         string  `json:"award,omitempty"`
	Score         float64 `json:"score"` // 聚合分，未评分项目为 0
}

// PublicLeaderboardResponse 公开排行榜响应
// 未发布时 Entries 为空、Published=false，前端渲染占位页
type PublicLeaderboardResponse struct {
	HackathonID string                     `json:"hackathon_id"`
	Published   bool                       `json:"published"`
	Curated     bool                       `json:"curated"` // true=管理员编排列表，false=按聚合分默认排名
	Entries     []LeaderboardEntryResponse `json:"entries"`
}

// AdminLeaderboardResponse 管理端排行榜响应（无论是否发布均返回原始条目）
type AdminLeaderboardResponse struct {
	HackathonID string                     `json:"hackathon_id"`
	Published   bool                       `json:"published"`
	Entries     []LeaderboardEntryResponse `json:"entries"`
}
