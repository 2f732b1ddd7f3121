package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigmatrix/internal/aggregate"
)

func TestCountBookedEvents(t *testing.T) {
	assert.Equal(t, 0, CountBookedEvents(""))
	assert.Equal(t, 0, CountBookedEvents("OUT"))
	assert.Equal(t, 1, CountBookedEvents("BOOKED"))
	assert.Equal(t, 1, CountBookedEvents("booked"))
	assert.Equal(t, 2, CountBookedEvents("BOOKED x 2"))
	assert.Equal(t, 3, CountBookedEvents("BOOKED x 3"))
	assert.Equal(t, 0, CountBookedEvents("BACKUP"))
}

func TestIncrementBooked(t *testing.T) {
	assert.Equal(t, "BOOKED", IncrementBooked(""))
	assert.Equal(t, "BOOKED x 2", IncrementBooked("BOOKED"))
	assert.Equal(t, "BOOKED x 3", IncrementBooked("BOOKED x 2"))
	assert.Equal(t, "BOOKED x 4", IncrementBooked("BOOKED x 3"))
	// 其他值不该走到这里，原样返回
	assert.Equal(t, "OUT", IncrementBooked("OUT"))
}

func TestIncrementPending(t *testing.T) {
	assert.Equal(t, "BOOKED", IncrementPending(""))
	assert.Equal(t, "BOOKED x 2", IncrementPending("BOOKED"))
	assert.Equal(t, "BOOKED x 3", IncrementPending("BOOKED x 2"))
	assert.Equal(t, "BOOKED, AAG", IncrementPending("AAG"))
	assert.Equal(t, "BOOKED x 2, AAG", IncrementPending("BOOKED, AAG"))
	assert.Equal(t, "BOOKED x 3, AAG", IncrementPending("BOOKED x 2, AAG"))
}

func TestIncrementThenCountRoundTrip(t *testing.T) {
	cell := ""
	for want := 1; want <= 4; want++ {
		cell = IncrementBooked(cell)
		assert.Equal(t, want, CountBookedEvents(cell))
	}
}

// 写路径的 TBA 编码必须能被聚合侧的解析器读回同样的数量和保留标记
func TestIncrementPendingParseRoundTrip(t *testing.T) {
	cell := ""
	for want := 1; want <= 3; want++ {
		cell = IncrementPending(cell)
		p := aggregate.ParsePending(cell)
		assert.Equal(t, want, p.Count)
		assert.False(t, p.Hold)
		assert.Empty(t, p.Warnings)
	}

	cell = "AAG"
	for want := 1; want <= 3; want++ {
		cell = IncrementPending(cell)
		p := aggregate.ParsePending(cell)
		assert.Equal(t, want, p.Count)
		assert.True(t, p.Hold)
		assert.Empty(t, p.Warnings)
	}
}

func TestClientDisplay(t *testing.T) {
	assert.Equal(t, "Catherine and Jacob", ClientDisplay("Catherine MacDougall and Jacob Asmuth"))
	assert.Equal(t, "Anya and Hilal", ClientDisplay("Anya Hee and Hilal Ahmad"))
	assert.Equal(t, "Bird Family Seder", ClientDisplay("Bird Family Seder"))
	assert.Equal(t, "HCF Volunteer Summit", ClientDisplay("HCF Volunteer Summit"))
	// 两侧只有一个词时不缩写
	assert.Equal(t, "Tom and Jerry", ClientDisplay("Tom and Jerry"))
	assert.Equal(t, "Johnson Wedding", ClientDisplay("Johnson Wedding"))
}
