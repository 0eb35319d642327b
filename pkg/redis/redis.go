package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"openhackathon/backend/config"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单、接口限流与公开排行榜缓存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 接口限流 ──

// CheckRateLimit 固定窗口限流：窗口内计数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// 首次计数时设置窗口过期
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── 公开排行榜缓存 ──

const leaderboardPrefix = "leaderboard:public:"

// GetLeaderboardCache 读取公开排行榜缓存（JSON 字符串），缓存未命中返回空串
func (c *Client) GetLeaderboardCache(ctx context.Context, hackathonID string) (string, error) {
	val, err := c.rdb.Get(ctx, leaderboardPrefix+hackathonID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

// SetLeaderboardCache 写入公开排行榜缓存
func (c *Client) SetLeaderboardCache(ctx context.Context, hackathonID, payload string, ttl time.Duration) error {
	return c.rdb.Set(ctx, leaderboardPrefix+hackathonID, payload, ttl).Err()
}

// InvalidateLeaderboardCache 删除公开排行榜缓存（保存/发布后调用）
func (c *Client) InvalidateLeaderboardCache(ctx context.Context, hackathonID string) error {
	return c.rdb.Del(ctx, leaderboardPrefix+hackathonID).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
