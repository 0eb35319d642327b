package repository

import (
	"context"

	"gorm.io/gorm"

	"openhackathon/backend/internal/model"
)

// AssignmentFilter 评审分配查询过滤条件（零值字段不参与过滤）
type AssignmentFilter struct {
	SessionID string
	ProjectID string
	JudgeID   string
	Status    string
}

// AssignmentRepository 评审分配数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	GetByProjectAndJudge(ctx context.Context, projectID, judgeID string) (*model.Assignment, error)
	ListByFilter(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Judge").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) GetByProjectAndJudge(ctx context.Context, projectID, judgeID string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND judge_id = ?", projectID, judgeID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByFilter(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	var assignments []model.Assignment
	q := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Judge").
		Order("created_at ASC")
	if filter.SessionID != "" {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.JudgeID != "" {
		q = q.Where("judge_id = ?", filter.JudgeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Find(&assignments).Error
	return assignments, err
}

// ListByHackathon 返回黑客松下全部评审分配（聚合与报表的数据源）
func (r *assignmentRepo) ListByHackathon(ctx context.Context, hackathonID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Judge").
		Joins("JOIN projects p ON p.project_id = assignments.project_id").
		Where("p.hackathon_id = ?", hackathonID).
		Order("assignments.created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Delete 硬删除评审分配，其评分记录由外键级联删除
func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}
