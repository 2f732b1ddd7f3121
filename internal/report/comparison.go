// Package report 把各类查询与对账结果渲染成纯文本
// 供 CLI 输出与 MQTT 报告发布共用，HTTP 层仍然走 JSON
package report

import (
	"fmt"
	"strings"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/reconcile"
)

const (
	ruleLine = "======================================================================"
	dashLine = "----------------------------------------------------------------------"
)

// builder 逐行拼接文本
type builder struct {
	sb strings.Builder
}

func (b *builder) line(format string, args ...any) {
	fmt.Fprintf(&b.sb, format+"\n", args...)
}

func (b *builder) blank() {
	b.sb.WriteByte('\n')
}

func (b *builder) String() string {
	return b.sb.String()
}

// sourceLabel 统计区使用的完整来源名
func sourceLabel(s domain.Source) string {
	switch s {
	case domain.SourceGigDB:
		return "Gig Database"
	case domain.SourceMatrix:
		return "Availability Matrix"
	case domain.SourceCalendar:
		return "Master Calendar"
	default:
		return string(s)
	}
}

// shortLabel 差异明细行使用的短来源名
func shortLabel(s domain.Source) string {
	switch s {
	case domain.SourceGigDB:
		return "Gig DB"
	case domain.SourceMatrix:
		return "Matrix"
	case domain.SourceCalendar:
		return "Cal"
	default:
		return string(s)
	}
}

// firstView 按优先顺序取差异里第一个非空的来源视图
func firstView(d reconcile.Discrepancy, prefer ...domain.Source) string {
	for _, s := range prefer {
		if v := d.PerSource[s]; len(v) > 0 {
			return strings.Join(v, ", ")
		}
	}
	return "[MISSING]"
}

// Comparison 把一次对账结果渲染成和手工核对习惯一致的分区文本
func Comparison(rep *reconcile.Report) string {
	var b builder

	b.line(ruleLine)
	b.line("BOOKING SYSTEM COMPARISON REPORT")
	b.line("Run:       %s", rep.RunID)
	b.line("Generated: %s", rep.GeneratedAt.Format("2006-01-02 15:04"))
	b.line(ruleLine)
	b.blank()

	b.line("STATISTICS")
	b.line(dashLine)
	for _, src := range rep.Compared {
		st := rep.Stats[src]
		unit := "bookings"
		if src == domain.SourceCalendar {
			unit = "events"
		}
		b.line("  %-21s%d %s on %d dates", sourceLabel(src)+":", st.Bookings, unit, st.Dates)
	}
	if len(rep.Unavailable) > 0 {
		b.line("  %-21s%s", "Unavailable:", joinSources(rep.Unavailable))
	}
	b.blank()

	byCat := map[reconcile.Category][]reconcile.Discrepancy{}
	for _, d := range rep.Discrepancies {
		byCat[d.Category] = append(byCat[d.Category], d)
	}
	backupCount := len(byCat[reconcile.CategoryBackupMismatch])
	bookingCount := len(rep.Discrepancies) - backupCount

	switch {
	case len(rep.Compared) < 2:
		b.line("STATUS: %d SOURCE(S) AVAILABLE, COMPARISON SKIPPED", len(rep.Compared))
	case len(rep.Discrepancies) == 0:
		b.line("STATUS: ALL SYSTEMS IN SYNC")
	default:
		b.line("STATUS: %d DISCREPANCY(IES) FOUND", len(rep.Discrepancies))
	}
	b.line(ruleLine)

	if ds := byCat[reconcile.CategoryMissingFromMatrix]; len(ds) > 0 {
		b.blank()
		b.line("MISSING FROM AVAILABILITY MATRIX (%d dates)", len(ds))
		b.line(dashLine)
		b.line("These are in the Gig Database but not marked BOOKED in the matrix:")
		b.blank()
		for _, d := range ds {
			b.line("  %8s  Gig DB: %s", d.DateKey, firstView(d, domain.SourceGigDB, domain.SourceCalendar))
		}
	}

	if ds := byCat[reconcile.CategoryMissingFromGigDB]; len(ds) > 0 {
		b.blank()
		b.line("MISSING FROM GIG DATABASE (%d dates)", len(ds))
		b.line(dashLine)
		b.line("These are in the Availability Matrix but not in the Gig Database:")
		b.blank()
		for _, d := range ds {
			b.line("  %8s  Matrix: %s", d.DateKey, firstView(d, domain.SourceMatrix, domain.SourceCalendar))
		}
	}

	if ds := byCat[reconcile.CategoryMissingFromCalendar]; len(ds) > 0 {
		b.blank()
		b.line("MISSING FROM MASTER CALENDAR (%d dates)", len(ds))
		b.line(dashLine)
		b.line("These are in the Gig Database but not on the calendar:")
		b.blank()
		for _, d := range ds {
			b.line("  %8s  Gig DB: %s", d.DateKey, firstView(d, domain.SourceGigDB, domain.SourceMatrix))
		}
	}

	if ds := byCat[reconcile.CategoryAssignmentMismatch]; len(ds) > 0 {
		b.blank()
		b.line("DJ ASSIGNMENT MISMATCHES (%d dates)", len(ds))
		b.line(dashLine)
		b.line("These dates have different DJs across systems:")
		b.blank()
		for _, d := range ds {
			b.line("  %8s", d.DateKey)
			for _, src := range d.Sources {
				view := "[MISSING]"
				if v := d.PerSource[src]; len(v) > 0 {
					view = strings.Join(v, ", ")
				}
				b.line("           %-8s %s", shortLabel(src)+":", view)
			}
			b.blank()
		}
	}

	if ds := byCat[reconcile.CategoryBackupMismatch]; len(ds) > 0 {
		b.blank()
		b.line("BACKUP DJ MISMATCHES (%d dates)", len(ds))
		b.line(dashLine)
		b.line("Backup assignments differ between Matrix and Calendar:")
		b.blank()
		for _, d := range ds {
			b.line("  %8s", d.DateKey)
			for _, src := range []domain.Source{domain.SourceMatrix, domain.SourceCalendar} {
				view := "[NONE]"
				if v := d.PerSource[src]; len(v) > 0 {
					view = strings.Join(v, ", ")
				}
				b.line("           %-8s %s", shortLabel(src)+":", view)
			}
			b.blank()
		}
	} else if hasSource(rep.Compared, domain.SourceMatrix) && hasSource(rep.Compared, domain.SourceCalendar) && len(rep.Discrepancies) > 0 {
		b.blank()
		b.line("BACKUP DJs: Matrix and Calendar are in sync")
	}

	if len(rep.Warnings) > 0 {
		b.blank()
		b.line("WARNINGS (%d)", len(rep.Warnings))
		b.line(dashLine)
		for _, w := range rep.Warnings {
			b.line("  - %s", w)
		}
	}

	b.blank()
	b.line(ruleLine)
	b.line("SUMMARY: %d booking discrepancy(ies), %d backup discrepancy(ies)", bookingCount, backupCount)
	b.line("Systems compared: %s", joinShortSources(rep.Compared))
	if len(rep.Unavailable) > 0 {
		b.line("Systems unavailable: %s", joinShortSources(rep.Unavailable))
	}
	b.line(ruleLine)

	return b.String()
}

func joinSources(srcs []domain.Source) string {
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func joinShortSources(srcs []domain.Source) string {
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, shortLabel(s))
	}
	return strings.Join(names, " + ")
}

func hasSource(srcs []domain.Source, want domain.Source) bool {
	for _, s := range srcs {
		if s == want {
			return true
		}
	}
	return false
}
