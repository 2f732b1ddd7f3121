package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gigmatrix/internal/snapshot"
)

// ErrMiss 缓存中没有可用条目
var ErrMiss = errors.New("snapshot cache miss")

// Clock 注入的时钟
type Clock func() time.Time

// SnapshotCache 按 (年, 范围, 抓取小时) 缓存快照集合
// 键里带小时：整点一过旧条目自然不再被命中，TTL 只是兜底上限
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	clock  Clock
	logger *zap.Logger
}

// NewSnapshotCache 创建快照缓存。clock 为 nil 时使用 time.Now
func NewSnapshotCache(client *redis.Client, ttl time.Duration, clock Clock, logger *zap.Logger) *SnapshotCache {
	if clock == nil {
		clock = time.Now
	}
	return &SnapshotCache{client: client, ttl: ttl, clock: clock, logger: logger}
}

func (c *SnapshotCache) key(year int, from, to time.Time) string {
	return fmt.Sprintf("gigmatrix:snapshot:%d:%s:%s:%s",
		year, from.Format("20060102"), to.Format("20060102"), c.clock().Format("2006010215"))
}

// Get 取当前小时的缓存快照；没有或损坏都返回 ErrMiss
func (c *SnapshotCache) Get(ctx context.Context, year int, from, to time.Time) (*snapshot.Bundle, error) {
	key := c.key(year, from, to)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot cache: %w", err)
	}

	var bundle snapshot.Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		// 损坏条目当作未命中，下一次 Put 覆盖
		c.logger.Warn("corrupt snapshot cache entry, treating as miss",
			zap.String("key", key), zap.Error(err))
		return nil, ErrMiss
	}
	return &bundle, nil
}

// Put 写入快照
func (c *SnapshotCache) Put(ctx context.Context, bundle *snapshot.Bundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot bundle: %w", err)
	}
	key := c.key(bundle.Year, bundle.From, bundle.To)
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}
	return nil
}

// Age 快照年龄的展示文本："fresh" 或 "cached N min ago"
func (c *SnapshotCache) Age(bundle *snapshot.Bundle) string {
	mins := int(c.clock().Sub(bundle.FetchedAt).Minutes())
	if mins < 1 {
		return "fresh"
	}
	return fmt.Sprintf("cached %d min ago", mins)
}
