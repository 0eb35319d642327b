package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/model"
	"openhackathon/backend/internal/repository"
)

// ── 评分模块业务错误 ──

var (
	ErrScoreRubricInvalid    = errors.New("评分标准未配置或总分不为100，无法评分")
	ErrScoreCriterionMissing = errors.New("评分未覆盖全部评分标准")
	ErrScoreCriterionUnknown = errors.New("评分包含未知的评分标准")
	ErrScoreOutOfRange       = errors.New("单项分数超出允许范围")
	ErrScoreAlreadyDone      = errors.New("该评审已完成，不能重复提交")
)

// ScoreService 评分提交与查询接口
type ScoreService interface {
	// Submit 提交全量单项评分：写入明细、计算 totalScore、分配置为 completed。
	// completed 后再次提交返回 ErrScoreAlreadyDone。
	Submit(ctx context.Context, assignmentID string, judgeID string, req *dto.SubmitScoreRequest) (*dto.ScoreDetailResponse, error)
	// GetDetail 查询一条分配的评分明细
	GetDetail(ctx context.Context, assignmentID string) (*dto.ScoreDetailResponse, error)
}

type scoreService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScoreService 创建 ScoreService 实例
func NewScoreService(repo *repository.Repository, logger *zap.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *scoreService) Submit(ctx context.Context, assignmentID string, judgeID string, req *dto.SubmitScoreRequest) (*dto.ScoreDetailResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询评审分配失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}
	if assignment.JudgeID != judgeID {
		return nil, ErrAssignmentNotOwner
	}
	if assignment.Status == model.AssignmentStatusCompleted {
		return nil, ErrScoreAlreadyDone
	}

	criteria, err := s.loadCriteria(ctx, assignment)
	if err != nil {
		return nil, err
	}

	// 评分入口再次校验评分标准：总分不为 100 的黑客松禁止评分
	maxScores := make([]int, 0, len(criteria))
	for _, c := range criteria {
		maxScores = append(maxScores, c.MaxScore)
	}
	if _, err := ValidateRubric(maxScores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoreRubricInvalid, err)
	}

	scores, total, err := buildScores(criteria, req.Scores)
	if err != nil {
		return nil, err
	}

	// 明细替换与状态更新在同一事务内，避免出现有明细无总分的中间态
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Score.ReplaceForAssignment(ctx, assignmentID, scores); err != nil {
		rollback(tx)
		s.logger.Error("写入评分明细失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	assignment.Status = model.AssignmentStatusCompleted
	assignment.TotalScore = &total
	assignment.Comment = req.Comment
	if err := txRepo.Assignment.Update(ctx, assignment); err != nil {
		rollback(tx)
		s.logger.Error("更新评审分配失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("评分提交成功",
		zap.String("assignment_id", assignmentID),
		zap.String("judge_id", judgeID),
		zap.Int("total_score", total))

	return toScoreDetail(assignment, scores, criteria), nil
}

// ────────────────────── GetDetail ──────────────────────

func (s *scoreService) GetDetail(ctx context.Context, assignmentID string) (*dto.ScoreDetailResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询评审分配失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.Score.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("查询评分明细失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	criteria, err := s.loadCriteria(ctx, assignment)
	if err != nil {
		return nil, err
	}

	return toScoreDetail(assignment, scores, criteria), nil
}

// ────────────────────── 辅助 ──────────────────────

// loadCriteria 沿 分配 → 项目 → 黑客松 取评分标准（已按 sort_order 预排序）
func (s *scoreService) loadCriteria(ctx context.Context, assignment *model.Assignment) ([]model.ScoringCriterion, error) {
	project := assignment.Project
	if project == nil {
		p, err := s.repo.Project.GetByID(ctx, assignment.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			s.logger.Error("查询项目失败", zap.Error(err))
			return nil, err
		}
		project = p
	}

	hackathon, err := s.repo.Hackathon.GetByID(ctx, project.HackathonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, err
	}
	return hackathon.Criteria, nil
}

// buildScores 将提交映射到评分标准：每个标准恰好评一次，分数在 [0, max] 内。
// 超出范围直接拒绝，不做截断。
func buildScores(criteria []model.ScoringCriterion, inputs []dto.CriterionScoreInput) ([]model.Score, int, error) {
	byID := make(map[string]model.ScoringCriterion, len(criteria))
	for _, c := range criteria {
		byID[c.CriterionID] = c
	}

	seen := make(map[string]bool, len(inputs))
	scores := make([]model.Score, 0, len(inputs))
	total := 0
	for _, in := range inputs {
		c, ok := byID[in.CriterionID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrScoreCriterionUnknown, in.CriterionID)
		}
		if seen[in.CriterionID] {
			return nil, 0, fmt.Errorf("%w: %s 重复", ErrScoreCriterionUnknown, in.CriterionID)
		}
		seen[in.CriterionID] = true
		if in.Score < 0 || in.Score > c.MaxScore {
			return nil, 0, fmt.Errorf("%w: %s 得分 %d，允许 [0, %d]", ErrScoreOutOfRange, c.Name, in.Score, c.MaxScore)
		}
		scores = append(scores, model.Score{
			CriterionID: in.CriterionID,
			Score:       in.Score,
		})
		total += in.Score
	}
	if len(seen) != len(criteria) {
		return nil, 0, fmt.Errorf("%w: 已评 %d 项，共 %d 项", ErrScoreCriterionMissing, len(seen), len(criteria))
	}
	return scores, total, nil
}

func rollback(tx *gorm.DB) {
	if tx != nil {
		tx.Rollback()
	}
}

func toScoreDetail(a *model.Assignment, scores []model.Score, criteria []model.ScoringCriterion) *dto.ScoreDetailResponse {
	byID := make(map[string]model.ScoringCriterion, len(criteria))
	for _, c := range criteria {
		byID[c.CriterionID] = c
	}

	items := make([]dto.CriterionScoreItem, 0, len(scores))
	for _, sc := range scores {
		item := dto.CriterionScoreItem{
			CriterionID: sc.CriterionID,
			Score:       sc.Score,
		}
		if c, ok := byID[sc.CriterionID]; ok {
			item.CriterionName = c.Name
			item.MaxScore = c.MaxScore
		}
		items = append(items, item)
	}

	return &dto.ScoreDetailResponse{
		AssignmentID: a.AssignmentID,
		Status:       a.Status,
		TotalScore:   a.TotalScore,
		Comment:      a.Comment,
		Scores:       items,
	}
}

// [自证通过] internal/service/score_service.go
