package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gigmatrix/internal/domain"
)

// CalendarEvent 日历快照中的一个事件
type CalendarEvent struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
}

// bracketCode 匹配标题前缀的括号代号：[PB] 或双人 [WM/HK]
var bracketCode = regexp.MustCompile(`\[([A-Za-z]{1,3}(?:/[A-Za-z]{1,3})*)\]`)

// FromCalendar 归一化日历快照
// 无括号代号的标题不是 DJ 事件，跳过；"HOLD TO DJ" 是保留位，整体剔除；
// 标题含 "BACKUP" 记为 backup 角色；双人代号 [WM/HK] 拆成两条记录；
// U 开头代号归为 Unassigned，其余无法识别的代号保留为 Unknown 并告警
func FromCalendar(events []CalendarEvent) ([]domain.BookingRecord, []string) {
	var out []domain.BookingRecord
	var warnings []string
	for _, ev := range events {
		m := bracketCode.FindStringSubmatch(ev.Title)
		if m == nil {
			continue
		}
		upper := strings.ToUpper(ev.Title)
		if strings.Contains(upper, "HOLD TO DJ") {
			continue
		}
		role := domain.RolePrimary
		if strings.Contains(upper, "BACKUP") {
			role = domain.RoleBackup
		}
		for _, code := range strings.Split(m[1], "/") {
			r := domain.ByInitials(code)
			if r == domain.Unknown {
				warnings = append(warnings, fmt.Sprintf("unrecognized calendar code [%s] on %s: %q", code, domain.DateKey(ev.Date), ev.Title))
			}
			out = append(out, domain.BookingRecord{
				Date: ev.Date, Resource: r, Role: role, Source: domain.SourceCalendar,
			})
		}
	}
	return out, warnings
}
