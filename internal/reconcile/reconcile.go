// Package reconcile 对账引擎：比较三个记录系统（矩阵 / gig 数据库 / 日历）
// 归一化后的预订集合，按日期找出并分类差异。只生成报表，从不回写任何来源。
package reconcile

import (
	"sort"
	"time"

	"gigmatrix/internal/domain"

	"github.com/google/uuid"
)

// Category 差异类别
type Category string

const (
	CategoryMissingFromMatrix   Category = "missing_from_matrix"   // gig DB / 日历有，矩阵整日为空
	CategoryMissingFromGigDB    Category = "missing_from_gigdb"    // 矩阵 / 日历有，gig DB 整日为空
	CategoryMissingFromCalendar Category = "missing_from_calendar" // 矩阵 / gig DB 有，日历整日为空
	CategoryAssignmentMismatch  Category = "assignment_mismatch"   // 各来源都有记录但 DJ 指派不一致
	CategoryBackupMismatch      Category = "backup_mismatch"       // backup 指派在矩阵与日历间不一致
)

// Discrepancy 单日单类别的一条差异
// PerSource 给出每个参与比较的来源在该日的展开视图（重复预订按次数展开，已排序）
type Discrepancy struct {
	Date      time.Time                  `json:"date"`
	DateKey   string                     `json:"date_key"`
	Category  Category                   `json:"category"`
	Sources   []domain.Source            `json:"sources"`
	PerSource map[domain.Source][]string `json:"per_source"`
}

// Stats 单个来源的统计
type Stats struct {
	Bookings int `json:"bookings"`
	Backups  int `json:"backups"`
	Dates    int `json:"dates"`
}

// Report 一次对账运行的完整结果
type Report struct {
	RunID         string                  `json:"run_id"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Compared      []domain.Source         `json:"compared"`
	Unavailable   []domain.Source         `json:"unavailable,omitempty"`
	Stats         map[domain.Source]Stats `json:"stats"`
	Discrepancies []Discrepancy           `json:"discrepancies"`
	Warnings      []string                `json:"warnings,omitempty"`
}

// InSync 至少两个来源参与比较且没有任何差异
func (r *Report) InSync() bool {
	return len(r.Compared) >= 2 && len(r.Discrepancies) == 0
}

// sourceOrder 报表中来源的固定顺序
var sourceOrder = []domain.Source{domain.SourceGigDB, domain.SourceMatrix, domain.SourceCalendar}

// multiset 单日内 (DJ → 记录数)。Unassigned 按条数比较，一天多条未指派预订是合法的
type multiset map[domain.Resource]int

func (m multiset) equal(o multiset) bool {
	if len(m) != len(o) {
		return false
	}
	for r, n := range m {
		if o[r] != n {
			return false
		}
	}
	return true
}

// expand 展开为排序后的名字列表，重复预订重复出现
func (m multiset) expand() []string {
	var out []string
	for r, n := range m {
		for i := 0; i < n; i++ {
			out = append(out, string(r))
		}
	}
	sort.Strings(out)
	return out
}

// dateBuckets 单来源按日期键分桶后的主预订和 backup 多重集
type dateBuckets struct {
	primary map[string]multiset
	backup  map[string]multiset
}

func bucket(recs []domain.BookingRecord) dateBuckets {
	b := dateBuckets{primary: map[string]multiset{}, backup: map[string]multiset{}}
	for _, rec := range recs {
		key := domain.DateKey(rec.Date)
		target := b.primary
		if rec.Role == domain.RoleBackup {
			target = b.backup
		}
		if target[key] == nil {
			target[key] = multiset{}
		}
		target[key][rec.Resource]++
	}
	return b
}

// missingCategory 来源整日为空对应的差异类别
func missingCategory(s domain.Source) Category {
	switch s {
	case domain.SourceMatrix:
		return CategoryMissingFromMatrix
	case domain.SourceGigDB:
		return CategoryMissingFromGigDB
	default:
		return CategoryMissingFromCalendar
	}
}

// Run 对账。records 缺失的来源视为本次获取失败：跳过其比较并在报表头标注，
// 不会中止整个运行。少于两个来源时没有可比较的对象，只输出统计
func Run(records map[domain.Source][]domain.BookingRecord) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Stats:       map[domain.Source]Stats{},
	}

	buckets := map[domain.Source]dateBuckets{}
	for _, s := range sourceOrder {
		recs, ok := records[s]
		if !ok {
			rep.Unavailable = append(rep.Unavailable, s)
			continue
		}
		rep.Compared = append(rep.Compared, s)
		buckets[s] = bucket(recs)

		st := Stats{}
		seen := map[string]bool{}
		for _, rec := range recs {
			if rec.Role == domain.RoleBackup {
				st.Backups++
			} else {
				st.Bookings++
			}
			seen[domain.DateKey(rec.Date)] = true
		}
		st.Dates = len(seen)
		rep.Stats[s] = st
	}

	if len(rep.Compared) < 2 {
		return rep
	}

	dates := primaryDates(records, rep.Compared)
	for _, key := range sortedKeys(dates) {
		perSource := map[domain.Source][]string{}
		var empty, nonEmpty []domain.Source
		for _, s := range rep.Compared {
			ms := buckets[s].primary[key]
			perSource[s] = ms.expand()
			if len(ms) == 0 {
				empty = append(empty, s)
			} else {
				nonEmpty = append(nonEmpty, s)
			}
		}
		if len(nonEmpty) == 0 || (len(empty) == 0 && !mismatchAmong(buckets, nonEmpty, key)) {
			continue
		}

		// 整日缺失的来源各记一条
		for _, s := range empty {
			rep.Discrepancies = append(rep.Discrepancies, Discrepancy{
				Date: dates[key], DateKey: key, Category: missingCategory(s),
				Sources: append([]domain.Source{s}, nonEmpty...), PerSource: perSource,
			})
		}
		// 非空来源之间的指派不一致单独记一条
		if mismatchAmong(buckets, nonEmpty, key) {
			rep.Discrepancies = append(rep.Discrepancies, Discrepancy{
				Date: dates[key], DateKey: key, Category: CategoryAssignmentMismatch,
				Sources: nonEmpty, PerSource: perSource,
			})
		}
	}

	rep.Discrepancies = append(rep.Discrepancies, compareBackups(records, buckets)...)
	return rep
}

// primaryDates 参与比较来源中所有主预订日期键，值为该键最早的实际日期
func primaryDates(records map[domain.Source][]domain.BookingRecord, compared []domain.Source) map[string]time.Time {
	dates := map[string]time.Time{}
	for _, s := range compared {
		for _, rec := range records[s] {
			if rec.Role != domain.RolePrimary {
				continue
			}
			key := domain.DateKey(rec.Date)
			if t, ok := dates[key]; !ok || rec.Date.Before(t) {
				dates[key] = rec.Date
			}
		}
	}
	return dates
}

func sortedKeys(dates map[string]time.Time) []string {
	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return dates[keys[i]].Before(dates[keys[j]]) })
	return keys
}

func mismatchAmong(buckets map[domain.Source]dateBuckets, sources []domain.Source, key string) bool {
	if len(sources) < 2 {
		return false
	}
	first := buckets[sources[0]].primary[key]
	for _, s := range sources[1:] {
		if !first.equal(buckets[s].primary[key]) {
			return true
		}
	}
	return false
}

// compareBackups backup 指派只在矩阵与日历之间核对，gig 数据库不登记 backup
func compareBackups(records map[domain.Source][]domain.BookingRecord, buckets map[domain.Source]dateBuckets) []Discrepancy {
	mb, okM := buckets[domain.SourceMatrix]
	cb, okC := buckets[domain.SourceCalendar]
	if !okM || !okC {
		return nil
	}

	dates := map[string]time.Time{}
	for _, s := range []domain.Source{domain.SourceMatrix, domain.SourceCalendar} {
		for _, rec := range records[s] {
			if rec.Role != domain.RoleBackup {
				continue
			}
			key := domain.DateKey(rec.Date)
			if t, ok := dates[key]; !ok || rec.Date.Before(t) {
				dates[key] = rec.Date
			}
		}
	}

	var out []Discrepancy
	for _, key := range sortedKeys(dates) {
		m, c := mb.backup[key], cb.backup[key]
		if m.equal(c) {
			continue
		}
		out = append(out, Discrepancy{
			Date: dates[key], DateKey: key, Category: CategoryBackupMismatch,
			Sources: []domain.Source{domain.SourceMatrix, domain.SourceCalendar},
			PerSource: map[domain.Source][]string{
				domain.SourceMatrix:   m.expand(),
				domain.SourceCalendar: c.expand(),
			},
		})
	}
	return out
}
