package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigmatrix/internal/aggregate"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/leads"
	"gigmatrix/internal/normalize"
	"gigmatrix/internal/rules"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

var (
	// ErrMatrixUnavailable 矩阵快照抓取失败，可用性查询无法进行
	ErrMatrixUnavailable = errors.New("matrix source unavailable")
	// ErrUnknownResource 名字不在花名册上
	ErrUnknownResource = errors.New("unknown resource name")
)

// AvailabilityService 可用性查询服务接口
type AvailabilityService interface {
	// 单日全员报告
	CheckDate(ctx context.Context, year, month, day int) (*DateReport, error)
	// 日期范围内的空位概览
	QueryRange(ctx context.Context, year int, q RangeQuery) (*RangeReport, error)
	// 单个 DJ 在范围内的档期
	ResourceRange(ctx context.Context, name string, year int, from, to time.Time) (*ResourceReport, error)
	// 已订满的日期明细
	FullyBooked(ctx context.Context, year int, from, to time.Time) (*FullyBookedReport, error)
}

// availabilityService 实现
type availabilityService struct {
	provider SnapshotProvider
	logger   *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(provider SnapshotProvider, logger *zap.Logger) AvailabilityService {
	return &availabilityService{provider: provider, logger: logger}
}

// ResourceStatus 单日内一名 DJ 的状态行
type ResourceStatus struct {
	Resource       domain.Resource `json:"resource"`
	Value          string          `json:"value"`           // 矩阵单元格原始值
	Bold           bool            `json:"bold,omitempty"`  // 加粗（当年最后一场标记）
	Category       rules.Category  `json:"category"`
	Bookable       bool            `json:"bookable"`
	BackupEligible bool            `json:"backup_eligible"`
	Note           string          `json:"note,omitempty"`
	Venue          string          `json:"venue,omitempty"`  // gig 库登记的场地
	Client         string          `json:"client,omitempty"` // gig 库登记的客户
	MatrixWarning  string          `json:"matrix_warning,omitempty"`
	Nearby         []string        `json:"nearby,omitempty"` // ±3 天内该 DJ 已订的日期
}

// DateReport 单日全员可用性报告
type DateReport struct {
	Year          int               `json:"year"`
	Date          time.Time         `json:"date"`
	SheetDate     string            `json:"sheet_date"`
	Resources     []ResourceStatus  `json:"resources"`
	Pending       string            `json:"pending,omitempty"`        // TBA 列原始值
	PendingVenues []string          `json:"pending_venues,omitempty"` // gig 库未指派预订的场地
	Hold          string            `json:"hold,omitempty"`           // AAG 列原始值
	Summary       aggregate.Summary `json:"summary"`
	Inquiries     *leads.View       `json:"inquiries,omitempty"`
	CacheAge      string            `json:"cache_age"`
	Missing       []domain.Source   `json:"missing_sources,omitempty"`
	Warnings      []string          `json:"warnings,omitempty"`
}

// RangeQuery 范围查询条件
type RangeQuery struct {
	From     time.Time // 必填
	To       time.Time // 必填
	Day      string    // 可选："weekend"、"weekday" 或具体星期名
	MinSpots int       // 可选：只要空位不少于该值的日期，0 表示不过滤
}

// DaySummary 范围内单日的聚合摘要
type DaySummary struct {
	Date      time.Time         `json:"date"`
	SheetDate string            `json:"sheet_date"`
	Summary   aggregate.Summary `json:"summary"`
}

// RangeReport 范围查询结果
type RangeReport struct {
	Year     int             `json:"year"`
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Day      string          `json:"day,omitempty"`
	MinSpots int             `json:"min_spots"`
	Days     []DaySummary    `json:"days"`
	CacheAge string          `json:"cache_age"`
	Missing  []domain.Source `json:"missing_sources,omitempty"`
}

// DateDetail 单个 DJ 档期里的一天
type DateDetail struct {
	Date      time.Time `json:"date"`
	SheetDate string    `json:"sheet_date"`
	Value     string    `json:"value,omitempty"` // 原始单元格，如 "BOOKED x 2"
	Venue     string    `json:"venue,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// ResourceReport 单个 DJ 在范围内的档期，按状态分组
type ResourceReport struct {
	Resource  domain.Resource `json:"resource"`
	Year      int             `json:"year"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Available []DateDetail    `json:"available,omitempty"`
	Maybe     []DateDetail    `json:"maybe,omitempty"`
	Booked    []DateDetail    `json:"booked,omitempty"`
	Backup    []DateDetail    `json:"backup,omitempty"`
	CacheAge  string          `json:"cache_age"`
	Missing   []domain.Source `json:"missing_sources,omitempty"`
}

// ResourceValue 订满日期里一条已占用记录
type ResourceValue struct {
	Resource domain.Resource `json:"resource"`
	Value    string          `json:"value"`
}

// FullyBookedDay 一个订满日期的明细
type FullyBookedDay struct {
	Date          time.Time         `json:"date"`
	SheetDate     string            `json:"sheet_date"`
	Booked        []ResourceValue   `json:"booked,omitempty"`
	PendingVenues []string          `json:"pending_venues,omitempty"`
	Summary       aggregate.Summary `json:"summary"`
}

// FullyBookedReport 订满日期查询结果
type FullyBookedReport struct {
	Year     int              `json:"year"`
	From     time.Time        `json:"from"`
	To       time.Time        `json:"to"`
	Days     []FullyBookedDay `json:"days"`
	CacheAge string           `json:"cache_age"`
	Missing  []domain.Source  `json:"missing_sources,omitempty"`
}

// dayKey 单年快照内的日期索引键
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// storeIndex 把 gig 库记录按日期和 DJ 建索引；未指派与无法识别的名字单独归类
type storeIndex struct {
	assigned   map[string]map[domain.Resource][]normalize.StoreRecord
	unassigned map[string][]normalize.StoreRecord
	warnings   []string
}

func indexStore(recs []normalize.StoreRecord) storeIndex {
	idx := storeIndex{
		assigned:   make(map[string]map[domain.Resource][]normalize.StoreRecord),
		unassigned: make(map[string][]normalize.StoreRecord),
	}
	for _, rec := range recs {
		key := dayKey(rec.Date)
		r := domain.ByFullName(rec.Resource)
		switch r {
		case domain.Unassigned:
			idx.unassigned[key] = append(idx.unassigned[key], rec)
		case domain.Unknown:
			idx.unassigned[key] = append(idx.unassigned[key], rec)
			idx.warnings = append(idx.warnings,
				fmt.Sprintf("gig booking on %s has unrecognized name %q", domain.DateKey(rec.Date), rec.Resource))
		default:
			byResource, ok := idx.assigned[key]
			if !ok {
				byResource = make(map[domain.Resource][]normalize.StoreRecord)
				idx.assigned[key] = byResource
			}
			byResource[r] = append(byResource[r], rec)
		}
	}
	return idx
}

// venues 拼出某日某 DJ 的场地列表文本
func venues(recs []normalize.StoreRecord) string {
	var names []string
	for _, rec := range recs {
		if v := strings.TrimSpace(rec.Venue); v != "" {
			names = append(names, v)
		}
	}
	return strings.Join(names, ", ")
}

// pendingVenues 某日所有未指派预订的场地
func (idx storeIndex) pendingVenues(date time.Time) []string {
	var out []string
	for _, rec := range idx.unassigned[dayKey(date)] {
		if v := strings.TrimSpace(rec.Venue); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// classifyDay 对矩阵一行做全员分类并聚合
func classifyDay(era *rules.Era, md snapshot.MatrixDay) ([]aggregate.Cell, aggregate.Summary) {
	var cells []aggregate.Cell
	for _, r := range domain.Roster() {
		if _, ok := era.Columns[r]; !ok {
			continue
		}
		parsed := rules.ParseCell(md.Values[r])
		cells = append(cells, aggregate.Cell{
			Resource: r,
			Parsed:   parsed,
			Class:    rules.Classify(r, era, md.Date, parsed, md.Bold[r]),
		})
	}
	return cells, aggregate.Aggregate(era, md.Date, cells, md.Pending, md.Hold)
}

// matchDay 日期过滤："weekend"、"weekday"、具体星期名或空
func matchDay(date time.Time, filter string) bool {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "":
		return true
	case "weekend":
		return domain.IsWeekend(date)
	case "weekday":
		return !domain.IsWeekend(date)
	default:
		return strings.EqualFold(date.Weekday().String(), strings.TrimSpace(filter))
	}
}

// occupied BOOKED 与 STANFORD 都算已占用的演出位
func occupied(v rules.Value) bool {
	return v == rules.ValueBooked || v == rules.ValueStanford
}

// nearbyBooked ±3 天内该 DJ 已有预订的日期，供接单时评估行程密度
func nearbyBooked(snap *snapshot.MatrixSnapshot, r domain.Resource, date time.Time) []string {
	var out []string
	for offset := -3; offset <= 3; offset++ {
		if offset == 0 {
			continue
		}
		md, err := snap.Day(date.AddDate(0, 0, offset))
		if err != nil {
			continue
		}
		if occupied(rules.ParseCell(md.Values[r]).Value) {
			out = append(out, domain.SheetDate(md.Date))
		}
	}
	return out
}

// CheckDate 单日全员可用性报告
// 逐个 DJ 给出矩阵值、分类结果和 gig 库佐证；两边说法不一致时带上告警
func (s *availabilityService) CheckDate(ctx context.Context, year, month, day int) (*DateReport, error) {
	bundle, age := s.provider.Bundle(ctx, year)
	if bundle.Matrix == nil {
		return nil, ErrMatrixUnavailable
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	md, err := bundle.Matrix.Day(date)
	if err != nil {
		return nil, err
	}

	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}
	idx := indexStore(bundle.Store)

	report := &DateReport{
		Year:      year,
		Date:      date,
		SheetDate: domain.SheetDate(date),
		Pending:   md.Pending,
		Hold:      md.Hold,
		CacheAge:  age,
		Missing:   bundle.Missing,
	}

	var cells []aggregate.Cell
	for _, r := range domain.Roster() {
		if _, ok := era.Columns[r]; !ok {
			continue
		}
		raw := md.Values[r]
		parsed := rules.ParseCell(raw)
		class := rules.Classify(r, era, date, parsed, md.Bold[r])
		cells = append(cells, aggregate.Cell{Resource: r, Parsed: parsed, Class: class})

		st := ResourceStatus{
			Resource:       r,
			Value:          raw,
			Bold:           md.Bold[r],
			Category:       class.Category,
			Bookable:       class.Bookable,
			BackupEligible: class.BackupEligible,
			Note:           class.Note,
		}

		recs := idx.assigned[dayKey(date)][r]
		if len(recs) > 0 {
			st.Venue = venues(recs)
			st.Client = strings.TrimSpace(recs[0].Client)
			switch {
			case parsed.Known && parsed.Value == rules.ValueBlank:
				st.MatrixWarning = "booked in gig database but matrix cell is blank"
			case !occupied(parsed.Value):
				st.MatrixWarning = fmt.Sprintf("booked in gig database but matrix shows %q", raw)
			case parsed.Value == rules.ValueBooked && parsed.Count != len(recs):
				st.MatrixWarning = fmt.Sprintf("gig database has %d booking(s) but matrix shows %d", len(recs), parsed.Count)
			}
		} else if class.Bookable {
			st.Nearby = nearbyBooked(bundle.Matrix, r, date)
		}

		report.Resources = append(report.Resources, st)
	}

	report.Summary = aggregate.Aggregate(era, date, cells, md.Pending, md.Hold)
	report.PendingVenues = idx.pendingVenues(date)

	if v := leads.ForDate(bundle.Inquiries, date); len(v.Booked)+len(v.NotBooked) > 0 {
		report.Inquiries = &v
	}

	report.Warnings = append(report.Warnings, report.Summary.Warnings...)
	report.Warnings = append(report.Warnings, idx.warnings...)
	report.Warnings = append(report.Warnings, bundle.Warnings...)

	s.logger.Info("date availability checked",
		zap.Int("year", year),
		zap.String("date", domain.DateKey(date)),
		zap.Int("available_spots", report.Summary.AvailableSpots),
		zap.String("cache_age", age),
	)
	return report, nil
}

// QueryRange 范围内逐日聚合，按星期和最低空位数过滤
func (s *availabilityService) QueryRange(ctx context.Context, year int, q RangeQuery) (*RangeReport, error) {
	bundle, age := s.provider.Bundle(ctx, year)
	if bundle.Matrix == nil {
		return nil, ErrMatrixUnavailable
	}

	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}
	report := &RangeReport{
		Year:     year,
		From:     q.From,
		To:       q.To,
		Day:      q.Day,
		MinSpots: q.MinSpots,
		CacheAge: age,
		Missing:  bundle.Missing,
	}

	for _, md := range bundle.Matrix.Between(q.From, q.To) {
		if !matchDay(md.Date, q.Day) {
			continue
		}
		_, summary := classifyDay(era, md)
		if summary.AvailableSpots < q.MinSpots {
			continue
		}
		report.Days = append(report.Days, DaySummary{
			Date:      md.Date,
			SheetDate: domain.SheetDate(md.Date),
			Summary:   summary,
		})
	}

	s.logger.Info("range availability queried",
		zap.Int("year", year),
		zap.String("day_filter", q.Day),
		zap.Int("min_spots", q.MinSpots),
		zap.Int("matched_days", len(report.Days)),
	)
	return report, nil
}

// ResourceRange 单个 DJ 的档期：已订（含场地）、backup、可接、待确认
// RESERVED 的保留位对该 DJ 同样是占用，归入已订组
func (s *availabilityService) ResourceRange(ctx context.Context, name string, year int, from, to time.Time) (*ResourceReport, error) {
	r := domain.ByName(name)
	if r == domain.Unknown || r == domain.Unassigned {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}

	bundle, age := s.provider.Bundle(ctx, year)
	if bundle.Matrix == nil {
		return nil, ErrMatrixUnavailable
	}

	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}
	if _, ok := era.Columns[r]; !ok {
		return nil, fmt.Errorf("%s has no matrix column in %d", r, year)
	}

	idx := indexStore(bundle.Store)
	report := &ResourceReport{
		Resource: r,
		Year:     year,
		From:     from,
		To:       to,
		CacheAge: age,
		Missing:  bundle.Missing,
	}

	for _, md := range bundle.Matrix.Between(from, to) {
		raw := md.Values[r]
		parsed := rules.ParseCell(raw)
		detail := DateDetail{Date: md.Date, SheetDate: domain.SheetDate(md.Date), Value: raw}

		switch {
		case occupied(parsed.Value) || parsed.Value == rules.ValueReserved:
			detail.Venue = venues(idx.assigned[dayKey(md.Date)][r])
			report.Booked = append(report.Booked, detail)
		case parsed.Value == rules.ValueBackup:
			report.Backup = append(report.Backup, detail)
		default:
			class := rules.Classify(r, era, md.Date, parsed, md.Bold[r])
			detail.Note = class.Note
			if class.Bookable {
				report.Available = append(report.Available, detail)
			} else if class.Category == rules.CategoryMaybe {
				report.Maybe = append(report.Maybe, detail)
			}
		}
	}

	s.logger.Info("resource availability queried",
		zap.String("resource", string(r)),
		zap.Int("year", year),
		zap.Int("available", len(report.Available)),
		zap.Int("booked", len(report.Booked)),
	)
	return report, nil
}

// FullyBooked 空位为零的日期及其占用明细
func (s *availabilityService) FullyBooked(ctx context.Context, year int, from, to time.Time) (*FullyBookedReport, error) {
	bundle, age := s.provider.Bundle(ctx, year)
	if bundle.Matrix == nil {
		return nil, ErrMatrixUnavailable
	}

	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}
	idx := indexStore(bundle.Store)
	report := &FullyBookedReport{
		Year:     year,
		From:     from,
		To:       to,
		CacheAge: age,
		Missing:  bundle.Missing,
	}

	for _, md := range bundle.Matrix.Between(from, to) {
		cells, summary := classifyDay(era, md)
		if summary.AvailableSpots > 0 {
			continue
		}

		entry := FullyBookedDay{
			Date:          md.Date,
			SheetDate:     domain.SheetDate(md.Date),
			PendingVenues: idx.pendingVenues(md.Date),
			Summary:       summary,
		}
		for _, c := range cells {
			if occupied(c.Parsed.Value) {
				entry.Booked = append(entry.Booked, ResourceValue{Resource: c.Resource, Value: c.Parsed.Raw})
			}
		}
		report.Days = append(report.Days, entry)
	}

	s.logger.Info("fully booked dates queried",
		zap.Int("year", year),
		zap.Int("matched_days", len(report.Days)),
	)
	return report, nil
}
