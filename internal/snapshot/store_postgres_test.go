package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookings_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresBookingRepository(db)

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	eventDate := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"event_date", "dj_name", "venue", "client"}).
		AddRow(eventDate, "Paul Burchfield", "Vintage Estate", "Christina and David").
		AddRow(eventDate, "Unassigned", "The Barn", nil)

	mock.ExpectQuery(`SELECT event_date, dj_name, venue, client`).
		WithArgs(from, to).
		WillReturnRows(rows)

	records, err := repo.Bookings(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Paul Burchfield", records[0].Resource)
	assert.Equal(t, "Vintage Estate", records[0].Venue)
	assert.Equal(t, eventDate, records[0].Date)
	assert.Equal(t, "Unassigned", records[1].Resource)
	assert.Equal(t, "", records[1].Client) // NULL client 读作空串

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookings_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresBookingRepository(db)

	mock.ExpectQuery(`SELECT event_date`).
		WillReturnError(errors.New("connection refused"))

	records, qErr := repo.Bookings(context.Background(), time.Now(), time.Now())
	assert.Error(t, qErr)
	assert.Nil(t, records)
	assert.Contains(t, qErr.Error(), "failed to query gig bookings")

	require.NoError(t, mock.ExpectationsWereMet())
}
