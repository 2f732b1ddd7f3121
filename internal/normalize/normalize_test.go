package normalize

import (
	"testing"
	"time"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)

func TestFromGrid_ExpandsMultiBooking(t *testing.T) {
	cells := map[domain.Resource]rules.Cell{
		domain.Paul:  rules.ParseCell("BOOKED x 2"),
		domain.Henry: rules.ParseCell("BOOKED"),
		domain.Woody: rules.ParseCell(""),
	}
	recs := FromGrid(day, cells, "")
	require.Len(t, recs, 3)

	var paul int
	for _, r := range recs {
		assert.Equal(t, domain.RolePrimary, r.Role)
		assert.Equal(t, domain.SourceMatrix, r.Source)
		if r.Resource == domain.Paul {
			paul++
		}
	}
	assert.Equal(t, 2, paul)
}

func TestFromGrid_BackupRole(t *testing.T) {
	cells := map[domain.Resource]rules.Cell{
		domain.Woody: rules.ParseCell("BACKUP"),
	}
	recs := FromGrid(day, cells, "")
	require.Len(t, recs, 1)
	assert.Equal(t, domain.RoleBackup, recs[0].Role)
	assert.Equal(t, domain.Woody, recs[0].Resource)
}

func TestFromGrid_HoldsExcluded(t *testing.T) {
	cells := map[domain.Resource]rules.Cell{
		domain.Stephanie: rules.ParseCell("RESERVED"),
	}
	recs := FromGrid(day, cells, "AAG")
	assert.Empty(t, recs)
}

func TestFromGrid_StanfordCountsAsPrimary(t *testing.T) {
	cells := map[domain.Resource]rules.Cell{
		domain.Henry: rules.ParseCell("STANFORD"),
	}
	recs := FromGrid(day, cells, "")
	require.Len(t, recs, 1)
	assert.Equal(t, domain.Henry, recs[0].Resource)
	assert.Equal(t, domain.RolePrimary, recs[0].Role)
}

func TestFromGrid_PendingBecomesUnassigned(t *testing.T) {
	recs := FromGrid(day, nil, "BOOKED x 2, AAG")
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, domain.Unassigned, r.Resource)
		assert.Equal(t, domain.RolePrimary, r.Role)
	}
}

func TestFromStore_MapsFullNames(t *testing.T) {
	recs, warns := FromStore([]StoreRecord{
		{Date: day, Resource: "Paul Burchfield", Venue: "Vintage Estate", Client: "Christina and David"},
		{Date: day, Resource: "Unassigned", Venue: "Barn", Client: "Amy"},
	})
	require.Len(t, recs, 2)
	assert.Empty(t, warns)
	assert.Equal(t, domain.Paul, recs[0].Resource)
	assert.Equal(t, domain.Unassigned, recs[1].Resource)
	assert.Equal(t, domain.SourceGigDB, recs[0].Source)
}

func TestFromStore_UnknownNameWarnsButStaysVisible(t *testing.T) {
	recs, warns := FromStore([]StoreRecord{
		{Date: day, Resource: "Mystery Person", Venue: "V", Client: "C"},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, domain.Unknown, recs[0].Resource)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "Mystery Person")
}

func TestFromCalendar_SingleAndDualCodes(t *testing.T) {
	recs, warns := FromCalendar([]CalendarEvent{
		{Date: day, Title: "[PB] Christina and David"},
		{Date: day, Title: "[WM/HK] Festival Stage"},
	})
	require.Len(t, recs, 3)
	assert.Empty(t, warns)
	assert.Equal(t, domain.Paul, recs[0].Resource)
	assert.Equal(t, domain.Woody, recs[1].Resource)
	assert.Equal(t, domain.Henry, recs[2].Resource)
	for _, r := range recs {
		assert.Equal(t, domain.RolePrimary, r.Role)
		assert.Equal(t, domain.SourceCalendar, r.Source)
	}
}

func TestFromCalendar_BackupTitles(t *testing.T) {
	recs, _ := FromCalendar([]CalendarEvent{
		{Date: day, Title: "[SB] PAID BACKUP DJ"},
		{Date: day, Title: "[WM] BACKUP DJ"},
	})
	require.Len(t, recs, 2)
	assert.Equal(t, domain.RoleBackup, recs[0].Role)
	assert.Equal(t, domain.Stefano, recs[0].Resource)
	assert.Equal(t, domain.RoleBackup, recs[1].Role)
}

func TestFromCalendar_HoldTitlesExcluded(t *testing.T) {
	recs, _ := FromCalendar([]CalendarEvent{
		{Date: day, Title: "[PB] HOLD TO DJ - Vintage Estate"},
	})
	assert.Empty(t, recs)
}

func TestFromCalendar_UnassignedCodes(t *testing.T) {
	recs, warns := FromCalendar([]CalendarEvent{
		{Date: day, Title: "[UP] Wedding TBD"},
		{Date: day, Title: "[UA] Amy's Wedding"},
	})
	require.Len(t, recs, 2)
	assert.Empty(t, warns)
	assert.Equal(t, domain.Unassigned, recs[0].Resource)
	assert.Equal(t, domain.Unassigned, recs[1].Resource)
}

func TestFromCalendar_NonBracketTitlesSkipped(t *testing.T) {
	recs, warns := FromCalendar([]CalendarEvent{
		{Date: day, Title: "Office party (no DJ)"},
	})
	assert.Empty(t, recs)
	assert.Empty(t, warns)
}

func TestFromCalendar_UnknownCodeWarns(t *testing.T) {
	recs, warns := FromCalendar([]CalendarEvent{
		{Date: day, Title: "[XX] Someone"},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, domain.Unknown, recs[0].Resource)
	require.Len(t, warns, 1)
}
