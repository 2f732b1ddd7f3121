package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gigmatrix/internal/aggregate"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
)

var (
	// ErrCountMismatch 矩阵与日历的预订数对不上，阻断一切写入计划
	ErrCountMismatch = errors.New("matrix and calendar booking counts disagree")
	// ErrNeedsApproval 该 DJ 当日已有预订，加订需要显式确认
	ErrNeedsApproval = errors.New("resource already booked on this date")
	// ErrNoColumn 该 DJ 在这个时代的矩阵里没有列
	ErrNoColumn = errors.New("resource has no column in this era")
	// ErrUnknownResource 名字不在花名册上，拒单以免误入 TBA 列
	ErrUnknownResource = errors.New("unknown resource name")
)

// Request 一条待登记的预订，边界层已解析为干净字段
type Request struct {
	Date          time.Time `json:"date"`
	ResourceName  string    `json:"resource"`       // 全名或 "Unassigned"
	SecondaryName string    `json:"secondary"`      // 未指派时原定 DJ 的线索
	Client        string    `json:"client"`
	Venue         string    `json:"venue"`
	VenueStreet   string    `json:"venue_street"`
	VenueCity     string    `json:"venue_city"`
	StartTime     string    `json:"start_time"` // 裸 12 小时制，如 "4:00"
	EndTime       string    `json:"end_time"`
	SoundType     string    `json:"sound_type"`
	CeremonySound bool      `json:"ceremony_sound"`
	HasPlanner    bool      `json:"has_planner"`
}

// MatrixRow 矩阵中目标日期一行的快照
type MatrixRow struct {
	Row     int
	Cells   map[domain.Resource]string
	Bold    map[domain.Resource]bool
	Pending string // TBA 列
	Hold    string // AAG 列
}

// Options 规划开关
type Options struct {
	AllowMultiple bool            // 允许同一 DJ 当日加订
	Backup        domain.Resource // 选定的 backup，空值表示不指派
}

// CellUpdate 计划中的一次矩阵单元格写入
type CellUpdate struct {
	Row      int             `json:"row"`
	Column   int             `json:"column"`
	Value    string          `json:"value"`
	Resource domain.Resource `json:"resource"` // Unassigned 表示 TBA 列
}

// EventPlan 计划中的一个日历事件
type EventPlan struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	AllDay   bool      `json:"all_day"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// BackupCandidate 可以顶 backup 的 DJ 及其备注
type BackupCandidate struct {
	Resource domain.Resource `json:"resource"`
	Paid     bool            `json:"paid"`
	Note     string          `json:"note,omitempty"`
}

// BackupAssessment 写入主预订之后的 backup 形势
type BackupAssessment struct {
	Existing       domain.Resource   `json:"existing,omitempty"`
	SpotsRemaining int               `json:"spots_remaining"`
	Candidates     []BackupCandidate `json:"candidates"`
}

// Plan 一次预订的完整写入计划。只描述，不执行
type Plan struct {
	Date          time.Time         `json:"date"`
	Year          int               `json:"year"`
	Resource      domain.Resource   `json:"resource"`
	Initials      string            `json:"initials"`
	Unassigned    bool              `json:"unassigned"`
	ClientDisplay string            `json:"client_display"`
	MatrixCount   int               `json:"matrix_count"`
	CalendarCount int               `json:"calendar_count"`
	Updates       []CellUpdate      `json:"updates"`
	Primary       *EventPlan        `json:"primary,omitempty"`
	BackupEvent   *EventPlan        `json:"backup_event,omitempty"`
	Backup        *BackupAssessment `json:"backup,omitempty"`
	Warnings      []string          `json:"warnings,omitempty"`
}

// BackupTitle backup 日历事件的标题；有偿 backup 标注 PAID
func BackupTitle(r domain.Resource) string {
	if r.IsPaidBackup() {
		return fmt.Sprintf("[%s] PAID BACKUP DJ", r.Initials())
	}
	return fmt.Sprintf("[%s] BACKUP DJ", r.Initials())
}

// BuildPlan 校验并规划一条预订
// 具名 DJ 先过计数闸门：矩阵单元格的预订数必须与当日日历中带其代号的
// 事件数一致，不一致即硬性错误。未指派预订走 TBA 列，跳过闸门和 backup 评估
func BuildPlan(era *rules.Era, req Request, row MatrixRow, calendarTitles []string, opts Options) (*Plan, error) {
	resource := domain.ByName(req.ResourceName)
	if resource == domain.Unknown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, req.ResourceName)
	}
	unassigned := resource == domain.Unassigned

	plan := &Plan{
		Date:          req.Date,
		Year:          era.Year,
		Resource:      resource,
		Unassigned:    unassigned,
		ClientDisplay: ClientDisplay(req.Client),
	}
	if unassigned {
		plan.Initials = domain.UnassignedInitials(req.SecondaryName)
	} else {
		plan.Initials = resource.Initials()
	}
	bracket := "[" + plan.Initials + "]"

	if !unassigned {
		col, ok := era.Columns[resource]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %d", ErrNoColumn, resource, era.Year)
		}

		plan.MatrixCount = CountBookedEvents(row.Cells[resource])
		for _, title := range calendarTitles {
			if strings.Contains(title, bracket) {
				plan.CalendarCount++
			}
		}
		if plan.MatrixCount != plan.CalendarCount {
			return nil, fmt.Errorf("%w: matrix %d, calendar %d for %s on %s",
				ErrCountMismatch, plan.MatrixCount, plan.CalendarCount, resource, domain.DateKey(req.Date))
		}
		if plan.MatrixCount > 0 && !opts.AllowMultiple {
			return nil, fmt.Errorf("%w: %s has %d booking(s) on %s",
				ErrNeedsApproval, resource, plan.MatrixCount, domain.DateKey(req.Date))
		}

		plan.Updates = append(plan.Updates, CellUpdate{
			Row: row.Row, Column: col,
			Value: IncrementBooked(row.Cells[resource]), Resource: resource,
		})
	} else {
		plan.Updates = append(plan.Updates, CellUpdate{
			Row: row.Row, Column: era.PendingColumn,
			Value: IncrementPending(row.Pending), Resource: domain.Unassigned,
		})
	}

	// 用写入后的行重新评估 backup 形势
	if !unassigned {
		plan.Backup = assessBackup(era, req.Date, resource, row, plan.Updates[0].Value)
		planBackup(era, plan, row, calendarTitles, opts.Backup)
	}

	plan.Primary = primaryEvent(plan, req)
	return plan, nil
}

// assessBackup 主预订落格后的名额与 backup 候选
func assessBackup(era *rules.Era, date time.Time, booked domain.Resource, row MatrixRow, newValue string) *BackupAssessment {
	after := make(map[domain.Resource]string, len(row.Cells)+1)
	for r, v := range row.Cells {
		after[r] = v
	}
	after[booked] = newValue

	a := &BackupAssessment{}
	var cells []aggregate.Cell
	for _, r := range domain.Roster() {
		if _, ok := era.Columns[r]; !ok {
			continue
		}
		raw := after[r]
		if strings.EqualFold(strings.TrimSpace(raw), "BACKUP") {
			a.Existing = r
		}
		parsed := rules.ParseCell(raw)
		cells = append(cells, aggregate.Cell{
			Resource: r, Parsed: parsed,
			Class: rules.Classify(r, era, date, parsed, row.Bold[r]),
		})
	}
	a.SpotsRemaining = aggregate.Aggregate(era, date, cells, row.Pending, row.Hold).AvailableSpots

	for _, r := range era.BackupEligible() {
		if r == booked {
			continue
		}
		if _, ok := era.Columns[r]; !ok {
			continue
		}
		parsed := rules.ParseCell(after[r])
		class := rules.Classify(r, era, date, parsed, row.Bold[r])
		switch {
		case class.BackupEligible:
			a.Candidates = append(a.Candidates, BackupCandidate{Resource: r, Paid: r.IsPaidBackup(), Note: class.Note})
		case class.Category == rules.CategoryMaybe:
			// 空白的容量受限 DJ 不自动计入，但问一声可能愿意顶
			a.Candidates = append(a.Candidates, BackupCandidate{Resource: r, Paid: r.IsPaidBackup(), Note: "check with " + string(r)})
		}
	}
	return a
}

// planBackup 指派选定的 backup；日历已有其代号的事件时跳过指派，主预订不受影响
func planBackup(era *rules.Era, plan *Plan, row MatrixRow, calendarTitles []string, backup domain.Resource) {
	if backup == "" {
		return
	}
	col, ok := era.Columns[backup]
	if !ok {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("backup %s has no column in %d, not assigned", backup, era.Year))
		return
	}
	bracket := "[" + backup.Initials() + "]"
	for _, title := range calendarTitles {
		if strings.Contains(title, bracket) {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("calendar conflict for %s on %s: %q; backup not assigned, primary booking intact",
					bracket, domain.DateKey(plan.Date), title))
			return
		}
	}

	plan.Updates = append(plan.Updates, CellUpdate{
		Row: row.Row, Column: col, Value: "BACKUP", Resource: backup,
	})
	day := time.Date(plan.Date.Year(), plan.Date.Month(), plan.Date.Day(), 0, 0, 0, 0, plan.Date.Location())
	plan.BackupEvent = &EventPlan{
		Title:  BackupTitle(backup),
		AllDay: true,
		Start:  day,
		End:    day.Add(24*time.Hour - time.Minute),
	}
	if plan.Backup != nil {
		plan.Backup.Existing = backup
	}
}

// primaryEvent 主日历事件：标题 [XX] 客户简称 (+ planner 标注)，时间由演出起止推出
func primaryEvent(plan *Plan, req Request) *EventPlan {
	title := fmt.Sprintf("[%s] %s", plan.Initials, plan.ClientDisplay)
	if req.HasPlanner {
		title += " (planner)"
	}

	if strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		plan.Warnings = append(plan.Warnings, "no times available, skipping primary calendar event")
		return nil
	}
	start, end, err := EventWindow(req.Date, req.StartTime, req.EndTime, req.SoundType, req.CeremonySound)
	if err != nil {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("bad event times (%v), skipping primary calendar event", err))
		return nil
	}

	var loc []string
	for _, part := range []string{req.Venue, req.VenueStreet, req.VenueCity} {
		if strings.TrimSpace(part) != "" {
			loc = append(loc, strings.TrimSpace(part))
		}
	}
	return &EventPlan{
		Title:    title,
		Location: strings.Join(loc, ", "),
		Start:    start,
		End:      end,
	}
}
