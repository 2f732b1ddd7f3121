package report

import (
	"testing"
	"time"

	"gigmatrix/internal/aggregate"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/leads"
	"gigmatrix/internal/rules"
	"gigmatrix/internal/service"

	"github.com/stretchr/testify/assert"
)

func feb(day int) time.Time {
	return time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC)
}

func TestAvailability_FullDay(t *testing.T) {
	rep := &service.DateReport{
		Year:      2026,
		Date:      feb(21),
		SheetDate: "Sat 2/21",
		Resources: []service.ResourceStatus{
			{Resource: domain.Henry, Value: "BOOKED", Category: rules.CategoryBooked, Venue: "The Grand Hall", Client: "Garcia Wedding"},
			{Resource: domain.Woody, Category: rules.CategoryAvailable, Venue: "Surprise Hall",
				MatrixWarning: "booked in gig database but matrix cell is blank"},
			{Resource: domain.Paul, Category: rules.CategoryAvailable, Bookable: true, BackupEligible: true,
				Nearby: []string{"Thu 2/19"}},
			{Resource: domain.Stefano, Category: rules.CategoryMaybe, Note: "check before counting"},
			{Resource: domain.Felipe, Category: rules.CategoryBackupOnly, BackupEligible: true},
			{Resource: domain.Stephanie, Category: rules.CategoryNotAvailable, Note: "not in rotation (2026)"},
		},
		PendingVenues: []string{"Club Nine"},
		Hold:          "RESERVED",
		Summary: aggregate.Summary{
			BookedCount:    3,
			AvailableSpots: 1,
			HoldActive:     true,
			Bookable:       []domain.Resource{domain.Paul},
			Maybe:          []domain.Resource{domain.Stefano},
		},
		Inquiries: &leads.View{NotBooked: []string{"Rustic Barn"}},
		CacheAge:  "cached 5 min ago",
	}

	text := Availability(rep)

	assert.Contains(t, text, "Year: 2026")
	assert.Contains(t, text, "Date: Sat 2/21")
	assert.Contains(t, text, "Henry: BOOKED (The Grand Hall)")
	assert.Contains(t, text, "Woody: BOOKED (Surprise Hall)  [!] booked in gig database but matrix cell is blank")
	assert.Contains(t, text, "Paul: [BLANK] - available (booked: Thu 2/19)")
	assert.Contains(t, text, "Stefano: [MAYBE]")
	assert.Contains(t, text, "Felipe: [BLANK] - can backup")
	assert.Contains(t, text, "Stephanie: not in rotation (2026)")
	assert.Contains(t, text, "TBA: BOOKED (Club Nine)")
	assert.Contains(t, text, "AAG: RESERVED")
	assert.Contains(t, text, "Confirmed bookings: 3")
	assert.Contains(t, text, "AAG Spot Reserved: 1")
	assert.Contains(t, text, "Available spots: 1* (Paul)")
	assert.Contains(t, text, "* Availability depends on confirmation from Stefano")
	assert.Contains(t, text, "INQUIRIES (not booked): Rustic Barn")
	assert.Contains(t, text, "Snapshot: cached 5 min ago")
}

func TestAvailability_BackupNoteAndUnknown(t *testing.T) {
	rep := &service.DateReport{
		Year:      2026,
		SheetDate: "Sat 2/21",
		Resources: []service.ResourceStatus{
			{Resource: domain.Woody, Value: "OUT", Category: rules.CategoryOut, BackupEligible: true, Note: "weekend"},
			{Resource: domain.Paul, Value: "VACATION?", Category: rules.CategoryUnknown},
		},
		Summary:  aggregate.Summary{AvailableSpots: 0},
		CacheAge: "fresh",
	}

	text := Availability(rep)

	assert.Contains(t, text, "Woody: OUT - can backup (weekend)")
	assert.Contains(t, text, "Paul: VACATION? (unknown status, treating as unavailable)")
	assert.Contains(t, text, "TBA: [BLANK]")
	assert.Contains(t, text, "Available spots: 0")
	assert.NotContains(t, text, "AAG:")
}

func TestAvailability_MissingSourcesFlagged(t *testing.T) {
	rep := &service.DateReport{
		Year:      2026,
		SheetDate: "Fri 2/20",
		Missing:   []domain.Source{domain.SourceGigDB},
		Warnings:  []string{"gig database unavailable, venue detail omitted"},
		CacheAge:  "fresh",
	}

	text := Availability(rep)

	assert.Contains(t, text, "Sources unavailable: gigdb")
	assert.Contains(t, text, "WARNINGS:")
	assert.Contains(t, text, "  - gig database unavailable, venue detail omitted")
}

func TestRangeSummary(t *testing.T) {
	rep := &service.RangeReport{
		Year:     2026,
		From:     feb(18),
		To:       feb(22),
		Day:      "weekend",
		MinSpots: 2,
		Days: []service.DaySummary{
			{Date: feb(21), SheetDate: "Sat 2/21", Summary: aggregate.Summary{AvailableSpots: 2,
				Bookable: []domain.Resource{domain.Woody, domain.Paul}}},
			{Date: feb(22), SheetDate: "Sun 2/22", Summary: aggregate.Summary{AvailableSpots: 3,
				Bookable: []domain.Resource{domain.Henry, domain.Woody, domain.Paul}}},
		},
		CacheAge: "fresh",
	}

	text := RangeSummary(rep)

	assert.Contains(t, text, "AVAILABILITY QUERY RESULTS - 2026")
	assert.Contains(t, text, "Date range: 2026-02-18 to 2026-02-22")
	assert.Contains(t, text, "Filter: weekend")
	assert.Contains(t, text, "Minimum spots: 2")
	assert.Contains(t, text, "Total matching dates: 2")
	assert.Contains(t, text, "Sat 2/21: 2 spot(s) available (Woody, Paul)")
	assert.Contains(t, text, "Sun 2/22: 3 spot(s) available\n")
	assert.NotContains(t, text, "Sun 2/22: 3 spot(s) available (")
}

func TestRangeSummary_NoMatches(t *testing.T) {
	rep := &service.RangeReport{Year: 2026, From: feb(18), To: feb(22), CacheAge: "fresh"}

	text := RangeSummary(rep)

	assert.Contains(t, text, "Total matching dates: 0")
	assert.Contains(t, text, "No dates found matching criteria.")
}

func TestSchedule(t *testing.T) {
	rep := &service.ResourceReport{
		Resource: domain.Paul,
		Year:     2026,
		From:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Available: []service.DateDetail{
			{Date: feb(20), SheetDate: "Fri 2/20"},
		},
		Booked: []service.DateDetail{
			{Date: feb(18), SheetDate: "Wed 2/18", Value: "BOOKED", Venue: "The Grand Hall"},
			{Date: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), SheetDate: "Sat 3/14", Value: "RESERVED"},
		},
		CacheAge: "fresh",
	}

	text := Schedule(rep)

	assert.Contains(t, text, "DJ AVAILABILITY QUERY - 2026")
	assert.Contains(t, text, "DJ: Paul")
	assert.Contains(t, text, "AVAILABLE FOR BOOKING (1 dates):")
	assert.Contains(t, text, "  Fri 2/20")
	assert.Contains(t, text, "BOOKED (2 dates):")
	assert.Contains(t, text, "  Wed 2/18 (The Grand Hall)")
	assert.Contains(t, text, "  Sat 3/14 [RESERVED]")
	assert.Contains(t, text, "BACKUP (0 dates):")
	assert.Contains(t, text, "  None")
	assert.NotContains(t, text, "MAYBE")
}

func TestSchedule_MaybeBucket(t *testing.T) {
	rep := &service.ResourceReport{
		Resource: domain.Stefano,
		Year:     2026,
		From:     feb(18),
		To:       feb(22),
		Maybe: []service.DateDetail{
			{Date: feb(21), SheetDate: "Sat 2/21", Note: "check before counting"},
		},
		CacheAge: "fresh",
	}

	text := Schedule(rep)

	assert.Contains(t, text, "MAYBE (1 dates):")
	assert.Contains(t, text, "  Sat 2/21 (check before counting)")
}

func TestFullyBooked(t *testing.T) {
	rep := &service.FullyBookedReport{
		Year: 2026,
		From: feb(18),
		To:   feb(28),
		Days: []service.FullyBookedDay{{
			Date:      feb(24),
			SheetDate: "Tue 2/24",
			Booked: []service.ResourceValue{
				{Resource: domain.Henry, Value: "BOOKED"},
				{Resource: domain.Woody, Value: "BOOKED"},
				{Resource: domain.Paul, Value: "BOOKED x 2"},
			},
			PendingVenues: []string{"Club Nine"},
			Summary: aggregate.Summary{
				FullyBooked:    true,
				HoldActive:     true,
				BackupAssigned: []domain.Resource{domain.Stefano},
				BackupEligible: []domain.Resource{domain.Felipe},
			},
		}},
		CacheAge: "fresh",
	}

	text := FullyBooked(rep)

	assert.Contains(t, text, "FULLY BOOKED DATES - 2026")
	assert.Contains(t, text, "Found 1 fully booked date(s):")
	assert.Contains(t, text, "Tue 2/24")
	assert.Contains(t, text, "  Booked: Henry, Woody, Paul (BOOKED x 2)")
	assert.Contains(t, text, "  TBA: Club Nine")
	assert.Contains(t, text, "  AAG: RESERVED")
	assert.Contains(t, text, "  Backup Assigned: Stefano")
	assert.Contains(t, text, "  Available to Backup: Felipe")
	assert.Contains(t, text, "TIP: Review your open inquiries")
}

func TestFullyBooked_Empty(t *testing.T) {
	rep := &service.FullyBookedReport{Year: 2026, From: feb(18), To: feb(28), CacheAge: "fresh"}

	text := FullyBooked(rep)

	assert.Contains(t, text, "No fully booked dates found in this range!")
}
