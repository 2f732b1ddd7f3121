package report

import (
	"fmt"
	"strings"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
	"gigmatrix/internal/service"
)

// resourceLine 单个 DJ 的状态行
// gig 库有登记时以库为准展示场地，矩阵不一致的提示跟在行尾
func resourceLine(st service.ResourceStatus) string {
	name := string(st.Resource)
	if st.Venue != "" {
		line := fmt.Sprintf("%s: BOOKED (%s)", name, st.Venue)
		if st.MatrixWarning != "" {
			line += "  [!] " + st.MatrixWarning
		}
		return line
	}

	display := st.Value
	if display == "" {
		display = "[BLANK]"
	}

	switch st.Category {
	case rules.CategoryMaybe:
		return name + ": [MAYBE]"
	case rules.CategoryBooked, rules.CategoryStanford, rules.CategoryReserved, rules.CategoryBackup:
		return fmt.Sprintf("%s: %s", name, display)
	case rules.CategoryNotAvailable:
		if st.Note != "" {
			return fmt.Sprintf("%s: %s", name, st.Note)
		}
		return fmt.Sprintf("%s: %s", name, display)
	case rules.CategoryUnknown:
		return fmt.Sprintf("%s: %s (unknown status, treating as unavailable)", name, display)
	case rules.CategoryLast:
		return fmt.Sprintf("%s: %s - available (low priority)", name, display)
	}

	if st.Bookable {
		line := fmt.Sprintf("%s: %s - available", name, display)
		if len(st.Nearby) > 0 {
			line += fmt.Sprintf(" (booked: %s)", strings.Join(st.Nearby, ", "))
		}
		return line
	}
	if st.BackupEligible {
		line := fmt.Sprintf("%s: %s - can backup", name, display)
		if st.Note != "" {
			line += fmt.Sprintf(" (%s)", st.Note)
		}
		return line
	}
	return fmt.Sprintf("%s: %s", name, display)
}

// Availability 渲染单日全员可用性报告
func Availability(rep *service.DateReport) string {
	var b builder

	b.line("Year: %d", rep.Year)
	b.line("Date: %s", rep.SheetDate)
	b.blank()

	for _, st := range rep.Resources {
		b.line("%s", resourceLine(st))
	}

	switch {
	case len(rep.PendingVenues) > 0:
		b.line("TBA: BOOKED (%s)", strings.Join(rep.PendingVenues, ", "))
	case rep.Pending != "":
		b.line("TBA: %s", rep.Pending)
	default:
		b.line("TBA: [BLANK]")
	}
	if rep.Hold != "" {
		b.line("AAG: %s", rep.Hold)
	}

	b.blank()
	b.line("AVAILABILITY SUMMARY:")
	b.line("Confirmed bookings: %d", rep.Summary.BookedCount)
	if rep.Summary.HoldActive {
		b.line("AAG Spot Reserved: 1")
	}

	spots := fmt.Sprintf("Available spots: %d", rep.Summary.AvailableSpots)
	if len(rep.Summary.Maybe) > 0 {
		spots += "*"
	}
	if rep.Summary.AvailableSpots > 0 && rep.Summary.AvailableSpots <= 2 && len(rep.Summary.Bookable) > 0 {
		spots += fmt.Sprintf(" (%s)", names(rep.Summary.Bookable))
	}
	b.line("%s", spots)
	if len(rep.Summary.Maybe) > 0 {
		b.line("* Availability depends on confirmation from %s", names(rep.Summary.Maybe))
	}

	if rep.Inquiries != nil && len(rep.Inquiries.NotBooked) > 0 {
		b.blank()
		b.line("INQUIRIES (not booked): %s", strings.Join(rep.Inquiries.NotBooked, ", "))
	}

	if len(rep.Warnings) > 0 {
		b.blank()
		b.line("WARNINGS:")
		for _, w := range rep.Warnings {
			b.line("  - %s", w)
		}
	}

	b.blank()
	if len(rep.Missing) > 0 {
		b.line("Sources unavailable: %s", joinSources(rep.Missing))
	}
	b.line("Snapshot: %s", rep.CacheAge)

	return b.String()
}

// RangeSummary 渲染日期范围查询结果
func RangeSummary(rep *service.RangeReport) string {
	var b builder

	b.line("AVAILABILITY QUERY RESULTS - %d", rep.Year)
	b.line("Date range: %s to %s", rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02"))
	if rep.Day != "" {
		b.line("Filter: %s", rep.Day)
	}
	if rep.MinSpots > 1 {
		b.line("Minimum spots: %d", rep.MinSpots)
	}
	b.line("Total matching dates: %d", len(rep.Days))
	b.blank()

	if len(rep.Days) == 0 {
		b.line("No dates found matching criteria.")
	}
	for _, d := range rep.Days {
		line := fmt.Sprintf("%s: %d spot(s) available", d.SheetDate, d.Summary.AvailableSpots)
		if d.Summary.AvailableSpots > 0 && d.Summary.AvailableSpots <= 2 && len(d.Summary.Bookable) > 0 {
			line += fmt.Sprintf(" (%s)", names(d.Summary.Bookable))
		}
		b.line("%s", line)
	}

	b.blank()
	b.line("Snapshot: %s", rep.CacheAge)

	return b.String()
}

// Schedule 渲染单个 DJ 的档期分组
func Schedule(rep *service.ResourceReport) string {
	var b builder

	b.line("DJ AVAILABILITY QUERY - %d", rep.Year)
	b.line("DJ: %s", rep.Resource)
	b.line("Date range: %s to %s", rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02"))
	b.blank()

	writeBucket(&b, fmt.Sprintf("AVAILABLE FOR BOOKING (%d dates):", len(rep.Available)), rep.Available)
	if len(rep.Maybe) > 0 {
		b.blank()
		writeBucket(&b, fmt.Sprintf("MAYBE (%d dates):", len(rep.Maybe)), rep.Maybe)
	}
	b.blank()
	writeBucket(&b, fmt.Sprintf("BOOKED (%d dates):", len(rep.Booked)), rep.Booked)
	b.blank()
	writeBucket(&b, fmt.Sprintf("BACKUP (%d dates):", len(rep.Backup)), rep.Backup)

	b.blank()
	b.line("Snapshot: %s", rep.CacheAge)

	return b.String()
}

func writeBucket(b *builder, header string, details []service.DateDetail) {
	b.line("%s", header)
	if len(details) == 0 {
		b.line("  None")
		return
	}
	for _, d := range details {
		line := "  " + d.SheetDate
		switch {
		case d.Venue != "":
			line += fmt.Sprintf(" (%s)", d.Venue)
		case d.Note != "":
			line += fmt.Sprintf(" (%s)", d.Note)
		case d.Value != "" && !strings.EqualFold(d.Value, "BOOKED"):
			line += fmt.Sprintf(" [%s]", d.Value)
		}
		b.line("%s", line)
	}
}

// FullyBooked 渲染订满日期查询结果
func FullyBooked(rep *service.FullyBookedReport) string {
	var b builder

	b.line("FULLY BOOKED DATES - %d", rep.Year)
	b.line("Date range: %s to %s", rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02"))
	b.blank()

	if len(rep.Days) == 0 {
		b.line("No fully booked dates found in this range!")
		b.blank()
		b.line("Snapshot: %s", rep.CacheAge)
		return b.String()
	}

	b.line("Found %d fully booked date(s):", len(rep.Days))
	for _, day := range rep.Days {
		b.blank()
		b.line("%s", day.SheetDate)
		if len(day.Booked) > 0 {
			b.line("  Booked: %s", bookedList(day.Booked))
		}
		if len(day.PendingVenues) > 0 {
			b.line("  TBA: %s", strings.Join(day.PendingVenues, ", "))
		} else if day.Summary.PendingCount > 0 {
			b.line("  TBA Bookings: %d", day.Summary.PendingCount)
		}
		if day.Summary.HoldActive {
			b.line("  AAG: RESERVED")
		}
		if len(day.Summary.BackupAssigned) > 0 {
			b.line("  Backup Assigned: %s", names(day.Summary.BackupAssigned))
		}
		if len(day.Summary.BackupEligible) > 0 {
			b.line("  Available to Backup: %s", names(day.Summary.BackupEligible))
		}
	}

	b.blank()
	b.line("TIP: Review your open inquiries for these dates to notify couples.")
	b.blank()
	b.line("Snapshot: %s", rep.CacheAge)

	return b.String()
}

func bookedList(entries []service.ResourceValue) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Value != "" && !strings.EqualFold(e.Value, "BOOKED") {
			parts = append(parts, fmt.Sprintf("%s (%s)", e.Resource, e.Value))
		} else {
			parts = append(parts, string(e.Resource))
		}
	}
	return strings.Join(parts, ", ")
}

func names(rs []domain.Resource) string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return strings.Join(out, ", ")
}
