package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/model"
	"openhackathon/backend/internal/repository"
)

// ── 赛段模块业务错误 ──

var (
	ErrSessionNotFound    = errors.New("赛段不存在")
	ErrSessionTimeInvalid = errors.New("赛段结束时间必须晚于开始时间")
)

// SessionService 赛段业务接口
type SessionService interface {
	Create(ctx context.Context, hackathonID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]dto.SessionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

func (s *sessionService) Create(ctx context.Context, hackathonID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if _, err := s.repo.Hackathon.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.String("id", hackathonID), zap.Error(err))
		return nil, err
	}

	startTime, endTime, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		HackathonID: hackathonID,
		Name:        req.Name,
		Type:        req.Type,
		Status:      model.SessionStatusPending,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("创建赛段失败", zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) ListByHackathon(ctx context.Context, hackathonID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("列出赛段失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func (s *sessionService) Update(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.Type != nil {
		session.Type = *req.Type
	}
	if req.Status != nil {
		session.Status = *req.Status
	}
	if req.StartTime != nil || req.EndTime != nil {
		startTime, endTime, err := parseTimeRange(req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			session.StartTime = startTime
		}
		if endTime != nil {
			session.EndTime = endTime
		}
		if session.StartTime != nil && session.EndTime != nil &&
			!session.EndTime.After(*session.StartTime) {
			return nil, ErrSessionTimeInvalid
		}
	}

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("更新赛段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.getSession(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Session.Delete(ctx, id); err != nil {
		s.logger.Error("删除赛段失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *sessionService) getSession(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询赛段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:          session.SessionID,
		HackathonID: session.HackathonID,
		Name:        session.Name,
		Type:        session.Type,
		Status:      session.Status,
		CreatedAt:   session.CreatedAt.Format(time.RFC3339),
	}
	if session.StartTime != nil {
		resp.StartTime = session.StartTime.Format(time.RFC3339)
	}
	if session.EndTime != nil {
		resp.EndTime = session.EndTime.Format(time.RFC3339)
	}
	return resp
}

// parseTimeRange 解析可选的起止时间（RFC3339），校验先后顺序
func parseTimeRange(start, end *string) (*time.Time, *time.Time, error) {
	var startTime, endTime *time.Time
	if start != nil && *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, ErrSessionTimeInvalid
		}
		startTime = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, ErrSessionTimeInvalid
		}
		endTime = &t
	}
	if startTime != nil && endTime != nil && !endTime.After(*startTime) {
		return nil, nil, ErrSessionTimeInvalid
	}
	return startTime, endTime, nil
}
