// Package cache 基于 Redis 的快照缓存。键按抓取小时轮换，整点后自然失效；
// 时钟注入，核心逻辑不读墙钟。
package cache

import (
	"context"

	"github.com/go-redis/redis/v8"

	"gigmatrix/internal/config"
)

// NewRedisClient 创建 Redis 客户端
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping 测试 Redis 连接
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
