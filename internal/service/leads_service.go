package service

import (
	"context"
	"fmt"
	"time"

	"gigmatrix/internal/leads"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

// LeadsService 场地询价查询服务接口
type LeadsService interface {
	Outcomes(ctx context.Context, from, to time.Time) ([]leads.Outcome, error)
}

// leadsService 实现
type leadsService struct {
	repo   snapshot.LeadRepository
	logger *zap.Logger
}

// NewLeadsService 创建 LeadsService 实例
func NewLeadsService(repo snapshot.LeadRepository, logger *zap.Logger) LeadsService {
	return &leadsService{repo: repo, logger: logger}
}

// Outcomes 范围内按 (日期, 场地) 去重后的询价结论
// 直查询价库而不走年度快照，范围可以跨年
func (s *leadsService) Outcomes(ctx context.Context, from, to time.Time) ([]leads.Outcome, error) {
	rows, err := s.repo.Inquiries(ctx, from, to)
	if err != nil {
		s.logger.Error("inquiry lookup failed",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load venue inquiries: %w", err)
	}

	outcomes := leads.Dedupe(rows)
	s.logger.Info("inquiry outcomes computed",
		zap.Int("rows", len(rows)),
		zap.Int("outcomes", len(outcomes)),
	)
	return outcomes, nil
}
