package domain

import (
	"fmt"
	"time"
)

// Role 预订角色
type Role string

const (
	RolePrimary Role = "primary"
	RoleBackup  Role = "backup"
)

// Source 三个外部记录系统
type Source string

const (
	SourceMatrix   Source = "matrix"   // 可用性矩阵（电子表格）
	SourceGigDB    Source = "gigdb"    // 已确认预订库
	SourceCalendar Source = "calendar" // 主日历
)

// BookingRecord 规范化后的预订记录，按对账运行临时生成，不落盘
type BookingRecord struct {
	Date     time.Time `json:"date"`
	Resource Resource  `json:"resource"`
	Role     Role      `json:"role"`
	Source   Source    `json:"source"`
}

// DateKey 报表使用的 "M/D" 键（无前导零）
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// SheetDate 矩阵日期列的文本格式，如 "Sat 2/21"
func SheetDate(t time.Time) string {
	return fmt.Sprintf("%s %d/%d", t.Format("Mon"), int(t.Month()), t.Day())
}

// IsWeekend 周六/周日
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
