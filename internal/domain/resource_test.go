package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestByFullName(t *testing.T) {
	assert.Equal(t, Paul, ByFullName("Paul Burchfield"))
	assert.Equal(t, Henry, ByFullName("Henry S. Kim"))
	assert.Equal(t, Woody, ByFullName("Woody Miraglia"))
	assert.Equal(t, Stefano, ByFullName("Stefano Bortolin"))
	assert.Equal(t, Felipe, ByFullName("Felipe Silva"))
	assert.Equal(t, Stephanie, ByFullName("Stephanie de Jesus"))

	assert.Equal(t, Unassigned, ByFullName("Unassigned"))
	assert.Equal(t, Unassigned, ByFullName("unassigned"))

	assert.Equal(t, Unknown, ByFullName(""))
	assert.Equal(t, Unknown, ByFullName("  "))
	assert.Equal(t, Unknown, ByFullName("John Smith"))
}

func TestByName(t *testing.T) {
	assert.Equal(t, Paul, ByName("Paul"))
	assert.Equal(t, Paul, ByName("paul"))
	assert.Equal(t, Paul, ByName("Paul Burchfield"))
	assert.Equal(t, Stephanie, ByName("stephanie"))
	assert.Equal(t, Unassigned, ByName("Unassigned"))
	assert.Equal(t, Unknown, ByName(""))
	assert.Equal(t, Unknown, ByName("DJ Nobody"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "HK", Henry.Initials())
	assert.Equal(t, "WM", Woody.Initials())
	assert.Equal(t, "PB", Paul.Initials())
	assert.Equal(t, "SB", Stefano.Initials())
	assert.Equal(t, "FS", Felipe.Initials())
	assert.Equal(t, "SD", Stephanie.Initials())
	assert.Equal(t, "UP", Unknown.Initials())
	assert.Equal(t, "UP", Unassigned.Initials())
}

func TestByInitials(t *testing.T) {
	assert.Equal(t, Paul, ByInitials("PB"))
	assert.Equal(t, Henry, ByInitials("hk"))
	assert.Equal(t, Unassigned, ByInitials("UP"))
	assert.Equal(t, Unassigned, ByInitials("UH"))
	assert.Equal(t, Unknown, ByInitials("ZZ"))
}

func TestByCode(t *testing.T) {
	assert.Equal(t, Henry, ByCode("H"))
	assert.Equal(t, Paul, ByCode("P"))
	assert.Equal(t, Stefano, ByCode("S"))
	assert.Equal(t, Woody, ByCode("W"))
	assert.Equal(t, Felipe, ByCode("F"))
	assert.Equal(t, Stephanie, ByCode("D"))
	assert.Equal(t, Stephanie, ByCode("SD"))
	assert.Equal(t, Felipe, ByCode("FS"))
	assert.Equal(t, Unassigned, ByCode("U"))
	assert.Equal(t, Unassigned, ByCode("UP"))
	assert.Equal(t, Unknown, ByCode("X"))
}

func TestUnassignedInitials(t *testing.T) {
	assert.Equal(t, "UP", UnassignedInitials("Paul Burchfield"))
	assert.Equal(t, "UH", UnassignedInitials("Henry S. Kim"))
	assert.Equal(t, "UP", UnassignedInitials(""))
}

func TestPaidBackup(t *testing.T) {
	assert.False(t, Henry.IsPaidBackup())
	assert.False(t, Woody.IsPaidBackup())
	assert.False(t, Paul.IsPaidBackup())
	assert.True(t, Stefano.IsPaidBackup())
	assert.True(t, Felipe.IsPaidBackup())
	assert.True(t, Stephanie.IsPaidBackup())
}

func TestSheetDate(t *testing.T) {
	assert.Equal(t, "Sat 2/21", SheetDate(time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sat 1/3", SheetDate(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Fri 12/25", SheetDate(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)))  // Saturday
	assert.True(t, IsWeekend(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)))  // Sunday
	assert.False(t, IsWeekend(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC))) // Monday
	assert.False(t, IsWeekend(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))) // Friday
}

func TestParseResolution(t *testing.T) {
	r, ok := ParseResolution("booked")
	assert.True(t, ok)
	assert.Equal(t, ResolutionBooked, r)

	r, ok = ParseResolution("Didn't Book")
	assert.True(t, ok)
	assert.Equal(t, ResolutionDidntBook, r)

	r, ok = ParseResolution("CANCELLED")
	assert.True(t, ok)
	assert.Equal(t, ResolutionCanceled, r)

	_, ok = ParseResolution("maybe later")
	assert.False(t, ok)
}
