package service

import (
	"context"
	"errors"
	"time"

	"gigmatrix/internal/cache"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

// BundleFetcher 三方快照抓取；snapshot.Fetcher 满足此接口
type BundleFetcher interface {
	Fetch(ctx context.Context, year int, from, to time.Time) *snapshot.Bundle
}

// BundleCache 按年窗口缓存快照；cache.SnapshotCache 满足此接口
type BundleCache interface {
	Get(ctx context.Context, year int, from, to time.Time) (*snapshot.Bundle, error)
	Put(ctx context.Context, bundle *snapshot.Bundle) error
	Age(bundle *snapshot.Bundle) string
}

// SnapshotProvider 向各服务提供某一年的三方快照，并附数据年龄说明
type SnapshotProvider interface {
	Bundle(ctx context.Context, year int) (*snapshot.Bundle, string)
}

// cachedProvider 实现
type cachedProvider struct {
	fetcher BundleFetcher
	cache   BundleCache // 可为 nil，表示每次直抓
	logger  *zap.Logger
}

// NewSnapshotProvider 创建 SnapshotProvider 实例
func NewSnapshotProvider(fetcher BundleFetcher, c BundleCache, logger *zap.Logger) SnapshotProvider {
	return &cachedProvider{fetcher: fetcher, cache: c, logger: logger}
}

// yearWindow 全年查询窗口：1月1日 → 12月31日
func yearWindow(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}

// Bundle 返回指定年份的快照。缓存键带小时戳，整点自动滚动重抓
func (p *cachedProvider) Bundle(ctx context.Context, year int) (*snapshot.Bundle, string) {
	from, to := yearWindow(year)

	if p.cache != nil {
		bundle, err := p.cache.Get(ctx, year, from, to)
		if err == nil {
			return bundle, p.cache.Age(bundle)
		}
		if !errors.Is(err, cache.ErrMiss) {
			p.logger.Warn("snapshot cache lookup failed", zap.Int("year", year), zap.Error(err))
		}
	}

	bundle := p.fetcher.Fetch(ctx, year, from, to)
	if p.cache != nil {
		if err := p.cache.Put(ctx, bundle); err != nil {
			p.logger.Warn("snapshot cache store failed", zap.Int("year", year), zap.Error(err))
		}
	}
	return bundle, "fresh"
}
