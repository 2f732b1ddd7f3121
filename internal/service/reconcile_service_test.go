package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/normalize"
	"gigmatrix/internal/reconcile"
	"gigmatrix/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reconcileBundle() *snapshot.Bundle {
	days := []snapshot.MatrixDay{
		matrixDay(8, feb(21), map[domain.Resource]string{domain.Henry: "BOOKED"}, ""),
		matrixDay(9, feb(22), nil, ""),
	}
	return &snapshot.Bundle{
		Year:      2026,
		FetchedAt: time.Now(),
		Matrix:    &snapshot.MatrixSnapshot{Year: 2026, Days: days, FetchedAt: time.Now()},
		Store: []normalize.StoreRecord{
			{Date: feb(21), Resource: "Henry S. Kim", Venue: "The Grand Hall"},
		},
		Calendar: []normalize.CalendarEvent{
			{Date: feb(21), Title: "[HK] Smith Wedding"},
		},
	}
}

func reconcileSvc(bundle *snapshot.Bundle) ReconcileService {
	return NewReconcileService(&fakeProvider{bundle: bundle, age: "fresh"}, zap.NewNop())
}

func TestCompare_InSync(t *testing.T) {
	rep, err := reconcileSvc(reconcileBundle()).Compare(context.Background(), 2026)
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.Source{domain.SourceMatrix, domain.SourceGigDB, domain.SourceCalendar}, rep.Compared)
	assert.Empty(t, rep.Discrepancies)
	assert.True(t, rep.InSync())
	assert.Equal(t, 1, rep.Stats[domain.SourceMatrix].Bookings)
	assert.Equal(t, 1, rep.Stats[domain.SourceGigDB].Bookings)
}

func TestCompare_DetectsMissingFromCalendar(t *testing.T) {
	bundle := reconcileBundle()
	bundle.Calendar = nil

	rep, err := reconcileSvc(bundle).Compare(context.Background(), 2026)
	require.NoError(t, err)

	require.Len(t, rep.Discrepancies, 1)
	assert.Equal(t, reconcile.CategoryMissingFromCalendar, rep.Discrepancies[0].Category)
	assert.Equal(t, "2/21", rep.Discrepancies[0].DateKey)
	assert.False(t, rep.InSync())
}

func TestCompare_SkipsUnavailableSource(t *testing.T) {
	bundle := reconcileBundle()
	bundle.Calendar = nil
	bundle.Missing = []domain.Source{domain.SourceCalendar}
	bundle.Warnings = []string{"calendar source unavailable: connection refused"}

	rep, err := reconcileSvc(bundle).Compare(context.Background(), 2026)
	require.NoError(t, err)

	// 抓取失败只标注，不当作日历整体为空来比较
	assert.ElementsMatch(t, []domain.Source{domain.SourceMatrix, domain.SourceGigDB}, rep.Compared)
	assert.Equal(t, []domain.Source{domain.SourceCalendar}, rep.Unavailable)
	assert.Empty(t, rep.Discrepancies)
	assert.Contains(t, rep.Warnings, "calendar source unavailable: connection refused")
}

func TestCompare_NormalizationWarningsPropagate(t *testing.T) {
	bundle := reconcileBundle()
	bundle.Store = append(bundle.Store, normalize.StoreRecord{
		Date: feb(22), Resource: "John Smith", Venue: "Somewhere",
	})

	rep, err := reconcileSvc(bundle).Compare(context.Background(), 2026)
	require.NoError(t, err)

	found := false
	for _, w := range rep.Warnings {
		if strings.Contains(w, "John Smith") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning naming the unrecognized DJ")
}
