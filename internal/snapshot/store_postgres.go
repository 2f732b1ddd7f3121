package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gigmatrix/internal/normalize"
)

// PostgresBookingRepository gig 数据库已确认预订的 Repository 实现
type PostgresBookingRepository struct {
	db *sql.DB
}

// NewPostgresBookingRepository 创建预订 Repository
func NewPostgresBookingRepository(db *sql.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

var _ BookingRepository = (*PostgresBookingRepository)(nil)

// Bookings 日期范围内的已确认预订，含边界
func (r *PostgresBookingRepository) Bookings(ctx context.Context, from, to time.Time) ([]normalize.StoreRecord, error) {
	query := `
		SELECT event_date, dj_name, venue, client
		FROM gig_bookings
		WHERE event_date >= $1 AND event_date <= $2
		ORDER BY event_date, dj_name`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query gig bookings: %w", err)
	}
	defer rows.Close()

	var records []normalize.StoreRecord
	for rows.Next() {
		var rec normalize.StoreRecord
		var venue, client sql.NullString
		if err := rows.Scan(&rec.Date, &rec.Resource, &venue, &client); err != nil {
			return nil, fmt.Errorf("failed to scan gig booking: %w", err)
		}
		rec.Venue = venue.String
		rec.Client = client.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gig bookings: %w", err)
	}
	return records, nil
}
