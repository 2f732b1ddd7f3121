package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gigmatrix/internal/domain"
)

func TestInquiries_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLeadRepository(db, zap.NewNop())

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 6, 9, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"inquiry_date", "venue", "resolution", "updated_at"}).
		AddRow(day, "Vintage Estate", "Booked", t1).
		AddRow(day, "The Barn", "didn't book", t2)

	mock.ExpectQuery(`SELECT inquiry_date, venue, resolution, updated_at`).
		WithArgs(from, to).
		WillReturnRows(rows)

	out, err := repo.Inquiries(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, domain.ResolutionBooked, out[0].Resolution)
	assert.Equal(t, "Vintage Estate", out[0].Venue)
	assert.Equal(t, t1, out[0].UpdatedAt)
	assert.Equal(t, domain.ResolutionDidntBook, out[1].Resolution)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInquiries_UnknownResolutionSkipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLeadRepository(db, zap.NewNop())

	day := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"inquiry_date", "venue", "resolution", "updated_at"}).
		AddRow(day, "Vineyard", "maybe later", day).
		AddRow(day, "Vineyard", "Canceled", day)

	mock.ExpectQuery(`SELECT inquiry_date`).WillReturnRows(rows)

	out, err := repo.Inquiries(context.Background(), day, day)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.ResolutionCanceled, out[0].Resolution)

	require.NoError(t, mock.ExpectationsWereMet())
}
