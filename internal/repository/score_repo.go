package repository

import (
	"context"

	"gorm.io/gorm"

	"openhackathon/backend/internal/model"
)

// ScoreRepository 单项评分数据访问接口
type ScoreRepository interface {
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.Score, error)
	// ReplaceForAssignment 整体替换一条分配下的全部单项评分（先删后插）
	// 重复提交走同一路径，保证 totalScore 不会跨重试累加
	ReplaceForAssignment(ctx context.Context, assignmentID string, scores []model.Score) error
}

type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&scores).Error
	return scores, err
}

func (r *scoreRepo) ReplaceForAssignment(ctx context.Context, assignmentID string, scores []model.Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", assignmentID).
			Delete(&model.Score{}).Error; err != nil {
			return err
		}
		for i := range scores {
			scores[i].AssignmentID = assignmentID
		}
		if len(scores) == 0 {
			return nil
		}
		return tx.Create(&scores).Error
	})
}
