package service

import (
	"context"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/normalize"
	"gigmatrix/internal/reconcile"
	"gigmatrix/internal/rules"

	"go.uber.org/zap"
)

// ReconcileService 跨系统对账服务接口
type ReconcileService interface {
	Compare(ctx context.Context, year int) (*reconcile.Report, error)
}

// reconcileService 实现
type reconcileService struct {
	provider SnapshotProvider
	logger   *zap.Logger
}

// NewReconcileService 创建 ReconcileService 实例
func NewReconcileService(provider SnapshotProvider, logger *zap.Logger) ReconcileService {
	return &reconcileService{provider: provider, logger: logger}
}

// Compare 规范化三方快照并运行全年对账
// 抓取失败的来源不参与比较，只在报表头标注，整个运行不中止
func (s *reconcileService) Compare(ctx context.Context, year int) (*reconcile.Report, error) {
	bundle, age := s.provider.Bundle(ctx, year)

	records := map[domain.Source][]domain.BookingRecord{}
	var warnings []string

	if bundle.Has(domain.SourceMatrix) && bundle.Matrix != nil {
		var recs []domain.BookingRecord
		for i := range bundle.Matrix.Days {
			md := &bundle.Matrix.Days[i]
			cells := make(map[domain.Resource]rules.Cell, len(md.Values))
			for r, raw := range md.Values {
				cells[r] = rules.ParseCell(raw)
			}
			recs = append(recs, normalize.FromGrid(md.Date, cells, md.Pending)...)
		}
		records[domain.SourceMatrix] = recs
	}
	if bundle.Has(domain.SourceGigDB) {
		recs, warns := normalize.FromStore(bundle.Store)
		records[domain.SourceGigDB] = recs
		warnings = append(warnings, warns...)
	}
	if bundle.Has(domain.SourceCalendar) {
		recs, warns := normalize.FromCalendar(bundle.Calendar)
		records[domain.SourceCalendar] = recs
		warnings = append(warnings, warns...)
	}

	report := reconcile.Run(records)
	report.Warnings = append(report.Warnings, warnings...)
	report.Warnings = append(report.Warnings, bundle.Warnings...)

	s.logger.Info("reconciliation completed",
		zap.Int("year", year),
		zap.String("run_id", report.RunID),
		zap.Int("compared_sources", len(report.Compared)),
		zap.Int("discrepancies", len(report.Discrepancies)),
		zap.Bool("in_sync", report.InSync()),
		zap.String("cache_age", age),
	)
	return report, nil
}
