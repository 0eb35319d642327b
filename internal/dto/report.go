package dto

// ── 报表模块 DTO ──

// MatrixResponse 评委×项目评分矩阵响应
// Cells[i][j] 为第 i 个项目在第 j 位评委处的 totalScore；
// nil 表示该评委尚未完成评审（与 0 分明确区分）
type MatrixResponse struct {
	HackathonID string      `json:"hackathon_id"`
	Judges      []JudgeCol  `json:"judges"`
	Rows        []MatrixRow `json:"rows"`
}

// JudgeCol 矩阵列头
type JudgeCol struct {
	JudgeID string `json:"judge_id"`
	Name    string `json:"name"`
}

// MatrixRow 矩阵行：一个项目及其各评委分数
type MatrixRow struct {
	Rank          int     `json:"rank"`
	ProjectID     string  `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	SubmitterName string  `json:"submitter_name"`
	Cells         []*int  `json:"cells"`
	Average       float64 `json:"average"`
}
