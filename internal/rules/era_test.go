package rules

import (
	"testing"

	"gigmatrix/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Column layouts are pinned per era. A misaligned column would read or write
// the wrong DJ's cell, so these expectations are hard gates.

func TestEraColumns_2025(t *testing.T) {
	e, err := ForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 1, e.DateColumn)
	assert.Equal(t, map[domain.Resource]int{
		domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
		domain.Stefano: 7, domain.Felipe: 8, domain.Stephanie: 11,
	}, e.Columns)
	assert.Equal(t, 9, e.PendingColumn)
	assert.False(t, e.HasHoldColumn())
}

func TestEraColumns_2026(t *testing.T) {
	e, err := ForYear(2026)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Resource]int{
		domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
		domain.Stefano: 7, domain.Felipe: 8, domain.Stephanie: 11,
	}, e.Columns)
	assert.Equal(t, 9, e.PendingColumn)
	assert.Equal(t, 12, e.HoldColumn)
}

func TestEraColumns_2027(t *testing.T) {
	e, err := ForYear(2027)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Resource]int{
		domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
		domain.Stefano: 7, domain.Stephanie: 8, domain.Felipe: 12,
	}, e.Columns)
	assert.Equal(t, 9, e.PendingColumn)
	assert.Equal(t, 10, e.HoldColumn)
}

func TestForYear_FutureFallsBackToLatest(t *testing.T) {
	e, err := ForYear(2031)
	require.NoError(t, err)
	assert.Equal(t, 2027, e.Year)
}

func TestForYear_UnknownPastYear(t *testing.T) {
	_, err := ForYear(2019)
	assert.Error(t, err)
}

func TestEraVariants(t *testing.T) {
	e2026, _ := ForYear(2026)
	assert.Equal(t, VariantBackupOnly, e2026.VariantOf(domain.Felipe))
	assert.Equal(t, VariantRestricted, e2026.VariantOf(domain.Stephanie))

	e2025, _ := ForYear(2025)
	assert.Equal(t, VariantStandard, e2025.VariantOf(domain.Felipe))

	e2027, _ := ForYear(2027)
	assert.Equal(t, VariantWeekendOnly, e2027.VariantOf(domain.Stephanie))
	assert.Contains(t, e2027.BackupEligible(), domain.Stephanie)

	e2026b, _ := ForYear(2026)
	assert.NotContains(t, e2026b.BackupEligible(), domain.Stephanie)
}
