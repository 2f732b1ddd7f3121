// Package normalize 将三个外部系统各自的预订表示法归一为统一的 BookingRecord，
// 供对账引擎比较。归一化只读快照，不回写任何来源。
package normalize

import (
	"time"

	"gigmatrix/internal/aggregate"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
)

// FromGrid 归一化矩阵单日数据
// BOOKED x N 展开为 N 条 primary 记录；STANFORD 是场地直签的确认预订，计一条 primary；
// BACKUP 产生一条 backup 记录；RESERVED 是保留位不是预订，整体剔除；
// TBA 列的每个 BOOKED 计一条 Unassigned 记录，AAG 标记同样剔除
func FromGrid(date time.Time, cells map[domain.Resource]rules.Cell, pendingRaw string) []domain.BookingRecord {
	var out []domain.BookingRecord
	for _, r := range domain.Roster() {
		cell, ok := cells[r]
		if !ok || !cell.Known {
			continue
		}
		switch cell.Value {
		case rules.ValueBooked:
			for i := 0; i < cell.Count; i++ {
				out = append(out, domain.BookingRecord{
					Date: date, Resource: r, Role: domain.RolePrimary, Source: domain.SourceMatrix,
				})
			}
		case rules.ValueStanford:
			out = append(out, domain.BookingRecord{
				Date: date, Resource: r, Role: domain.RolePrimary, Source: domain.SourceMatrix,
			})
		case rules.ValueBackup:
			out = append(out, domain.BookingRecord{
				Date: date, Resource: r, Role: domain.RoleBackup, Source: domain.SourceMatrix,
			})
		}
	}

	pending := aggregate.ParsePending(pendingRaw)
	for i := 0; i < pending.Count; i++ {
		out = append(out, domain.BookingRecord{
			Date: date, Resource: domain.Unassigned, Role: domain.RolePrimary, Source: domain.SourceMatrix,
		})
	}
	return out
}
