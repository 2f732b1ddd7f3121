// Package leads 线索去重：把只追加的场地询价日志折叠成每个 (日期, 场地)
// 的规范化结论。同一档期同一场地可能有多对新人先后询价，预订数必须
// 从完整行集派生，输入行的顺序不影响结果。
package leads

import (
	"sort"
	"strings"
	"time"

	"gigmatrix/internal/domain"
)

// Outcome 一个 (日期, 场地) 的规范化结论
type Outcome struct {
	Date        time.Time         `json:"date"`
	Venue       string            `json:"venue"`
	BookedCount int               `json:"booked_count"`
	Resolution  domain.Resolution `json:"resolution"`
	LatestAt    time.Time         `json:"latest_at"`
}

// Dedupe 按 (日期, 场地) 分组折叠询价日志
// 取消行只有在时间戳严格晚于该组最早预订时间时才抵扣一次预订；
// 早于首次预订或组内没有预订行的取消，属于同场地另一桩无关询价，不参与计数。
// 预订数下限为 0。组内没有预订行时，结论取时间戳最新的那一行
func Dedupe(rows []domain.InquiryRow) []Outcome {
	type key struct {
		date  string
		venue string
	}
	groups := map[key][]domain.InquiryRow{}
	first := map[key]time.Time{}
	for _, row := range rows {
		k := key{row.Date.Format("2006-01-02"), strings.TrimSpace(row.Venue)}
		groups[k] = append(groups[k], row)
		if t, ok := first[k]; !ok || row.Date.Before(t) {
			first[k] = row.Date
		}
	}

	out := make([]Outcome, 0, len(groups))
	for k, group := range groups {
		o := Outcome{Date: first[k], Venue: k.venue}

		var booked, canceled []domain.InquiryRow
		latest := group[0]
		for _, row := range group {
			if laterThan(row, latest) {
				latest = row
			}
			switch row.Resolution {
			case domain.ResolutionBooked:
				booked = append(booked, row)
			case domain.ResolutionCanceled:
				canceled = append(canceled, row)
			}
		}
		o.LatestAt = latest.UpdatedAt

		if len(booked) == 0 {
			o.Resolution = latest.Resolution
			out = append(out, o)
			continue
		}

		firstBookedAt := booked[0].UpdatedAt
		for _, row := range booked[1:] {
			if row.UpdatedAt.Before(firstBookedAt) {
				firstBookedAt = row.UpdatedAt
			}
		}
		valid := 0
		for _, row := range canceled {
			if row.UpdatedAt.After(firstBookedAt) {
				valid++
			}
		}
		o.BookedCount = len(booked) - valid
		if o.BookedCount < 0 {
			o.BookedCount = 0
		}
		if o.BookedCount > 0 {
			o.Resolution = domain.ResolutionBooked
		} else {
			o.Resolution = domain.ResolutionCanceled
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Venue < out[j].Venue
	})
	return out
}

// laterThan 时间戳靠后者胜出；时间戳完全相同时按处理结果字典序取大，保证顺序无关
func laterThan(a, b domain.InquiryRow) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.Resolution > b.Resolution
}

// View 单日的场地询价视图，供可用性报表展示
type View struct {
	Booked    []string `json:"booked,omitempty"`
	NotBooked []string `json:"not_booked,omitempty"`
}

// ForDate 过滤出指定日期的询价结论
func ForDate(rows []domain.InquiryRow, date time.Time) View {
	key := date.Format("2006-01-02")
	var v View
	for _, o := range Dedupe(rows) {
		if o.Date.Format("2006-01-02") != key {
			continue
		}
		if o.BookedCount > 0 {
			v.Booked = append(v.Booked, o.Venue)
		} else {
			v.NotBooked = append(v.NotBooked, o.Venue)
		}
	}
	return v
}
