package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"openhackathon/backend/internal/model"
)

// LeaderboardRepository 排行榜数据访问接口
type LeaderboardRepository interface {
	GetByHackathon(ctx context.Context, hackathonID string) (*model.Leaderboard, error)
	// Save 原子保存：upsert 排行榜行 + 整体替换条目列表 + 发布标志，单事务完成
	Save(ctx context.Context, hackathonID string, published bool, entries []model.LeaderboardEntry) error
}

type leaderboardRepo struct {
	db *gorm.DB
}

// NewLeaderboardRepo 创建 LeaderboardRepository 实例
func NewLeaderboardRepo(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepo{db: db}
}

func (r *leaderboardRepo) GetByHackathon(ctx context.Context, hackathonID string) (*model.Leaderboard, error) {
	var board model.Leaderboard
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Preload("Entries.Project").
		Preload("Entries.Project.Submitter").
		Where("hackathon_id = ?", hackathonID).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *leaderboardRepo) Save(ctx context.Context, hackathonID string, published bool, entries []model.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Leaderboard
		err := tx.Where("hackathon_id = ?", hackathonID).First(&board).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			board = model.Leaderboard{HackathonID: hackathonID}
			if err := tx.Create(&board).Error; err != nil {
				return err
			}
		}

		board.Published = published
		if err := tx.Save(&board).Error; err != nil {
			return err
		}

		if err := tx.Where("leaderboard_id = ?", board.LeaderboardID).
			Delete(&model.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].LeaderboardID = board.LeaderboardID
			entries[i].EntryID = ""
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}
