package repository

import (
	"context"

	"gorm.io/gorm"

	"openhackathon/backend/internal/model"
)

// HackathonRepository 黑客松数据访问接口
type HackathonRepository interface {
	Create(ctx context.Context, hackathon *model.Hackathon) error
	GetByID(ctx context.Context, id string) (*model.Hackathon, error)
	List(ctx context.Context, status string) ([]model.Hackathon, error)
	Update(ctx context.Context, hackathon *model.Hackathon) error
	Delete(ctx context.Context, id string) error
	ListCriteria(ctx context.Context, hackathonID string) ([]model.ScoringCriterion, error)
	ReplaceCriteria(ctx context.Context, hackathonID string, criteria []model.ScoringCriterion) error
}

type hackathonRepo struct {
	db *gorm.DB
}

// NewHackathonRepo 创建 HackathonRepository 实例
func NewHackathonRepo(db *gorm.DB) HackathonRepository {
	return &hackathonRepo{db: db}
}

func (r *hackathonRepo) Create(ctx context.Context, hackathon *model.Hackathon) error {
	return r.db.WithContext(ctx).Create(hackathon).Error
}

func (r *hackathonRepo) GetByID(ctx context.Context, id string) (*model.Hackathon, error) {
	var hackathon model.Hackathon
	err := r.db.WithContext(ctx).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("hackathon_id = ?", id).
		First(&hackathon).Error
	if err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func (r *hackathonRepo) List(ctx context.Context, status string) ([]model.Hackathon, error) {
	var hackathons []model.Hackathon
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&hackathons).Error
	return hackathons, err
}

func (r *hackathonRepo) Update(ctx context.Context, hackathon *model.Hackathon) error {
	return r.db.WithContext(ctx).Save(hackathon).Error
}

// Delete 硬删除黑客松；赛段/项目/分配/评分由外键级联删除
func (r *hackathonRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("hackathon_id = ?", id).
		Delete(&model.Hackathon{}).Error
}

func (r *hackathonRepo) ListCriteria(ctx context.Context, hackathonID string) ([]model.ScoringCriterion, error) {
	var criteria []model.ScoringCriterion
	err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("sort_order ASC").
		Find(&criteria).Error
	return criteria, err
}

// ReplaceCriteria 整体替换评分标准（先删后插，单事务）
func (r *hackathonRepo) ReplaceCriteria(ctx context.Context, hackathonID string, criteria []model.ScoringCriterion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hackathon_id = ?", hackathonID).
			Delete(&model.ScoringCriterion{}).Error; err != nil {
			return err
		}
		for i := range criteria {
			criteria[i].HackathonID = hackathonID
			criteria[i].SortOrder = i
		}
		if len(criteria) == 0 {
			return nil
		}
		return tx.Create(&criteria).Error
	})
}
