package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gigmatrix/internal/domain"
)

// PostgresLeadRepository 场地询价日志的 Repository 实现
type PostgresLeadRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresLeadRepository 创建询价 Repository
func NewPostgresLeadRepository(db *sql.DB, logger *zap.Logger) *PostgresLeadRepository {
	return &PostgresLeadRepository{db: db, logger: logger}
}

var _ LeadRepository = (*PostgresLeadRepository)(nil)

// Inquiries 日期范围内的询价行。日志只追加，这里永不写入
// 无法识别的 resolution 文本记告警并跳过该行
func (r *PostgresLeadRepository) Inquiries(ctx context.Context, from, to time.Time) ([]domain.InquiryRow, error) {
	query := `
		SELECT inquiry_date, venue, resolution, updated_at
		FROM venue_leads
		WHERE inquiry_date >= $1 AND inquiry_date <= $2
		ORDER BY updated_at`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue leads: %w", err)
	}
	defer rows.Close()

	var out []domain.InquiryRow
	for rows.Next() {
		var row domain.InquiryRow
		var resolution string
		if err := rows.Scan(&row.Date, &row.Venue, &resolution, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan venue lead: %w", err)
		}
		parsed, ok := domain.ParseResolution(resolution)
		if !ok {
			r.logger.Warn("unrecognized lead resolution, row skipped",
				zap.String("resolution", resolution),
				zap.String("venue", row.Venue),
				zap.Time("date", row.Date),
			)
			continue
		}
		row.Resolution = parsed
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venue leads: %w", err)
	}
	return out, nil
}
