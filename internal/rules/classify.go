package rules

import (
	"fmt"
	"time"

	"gigmatrix/internal/domain"
)

// Category 单元格的展示类别
type Category string

const (
	CategoryAvailable    Category = "available"
	CategoryBooked       Category = "booked"
	CategoryBackup       Category = "backup"
	CategoryOut          Category = "out"
	CategoryMaxed        Category = "maxed"
	CategoryReserved     Category = "reserved"
	CategoryStanford     Category = "stanford"
	CategoryBackupOnly   Category = "backup-only"
	CategoryMaybe        Category = "maybe"
	CategoryLast         Category = "last"
	CategoryDad          Category = "dad"
	CategoryNotAvailable Category = "not-available"
	CategoryUnknown      Category = "unknown"
)

// Classification 分类结果。Bookable 与 BackupEligible 互相独立
type Classification struct {
	Bookable       bool
	BackupEligible bool
	Category       Category
	Note           string // 展示用补充说明，如 backup 成立的原因
	Warning        string // 未知值告警，非致命
}

// Classify 判定某 DJ 在指定日期的一个单元格的可用性
// 查表是全函数：任何 (DJ, 时代, 星期, 值, 加粗) 组合都有唯一结果
// 未知值优先于一切 DJ 规则（安全默认：视为不可用）
func Classify(r domain.Resource, era *Era, date time.Time, cell Cell, bold bool) Classification {
	if !cell.Known {
		return Classification{
			Category: CategoryUnknown,
			Warning:  fmt.Sprintf("unknown matrix value %q for %s, treating as unavailable", cell.Raw, r),
		}
	}

	// 已占用/保留的值不依赖变体
	switch cell.Value {
	case ValueBooked:
		return Classification{Category: CategoryBooked}
	case ValueBackup:
		return Classification{Category: CategoryBackup}
	case ValueStanford:
		return Classification{Category: CategoryStanford}
	case ValueReserved:
		return Classification{Category: CategoryReserved}
	}

	weekend := domain.IsWeekend(date)
	switch era.VariantOf(r) {
	case VariantWeekendOnly:
		return classifyWeekendOnly(cell.Value, weekend)
	case VariantWeekendPreference:
		return classifyWeekendPreference(cell.Value, weekend, bold)
	case VariantCapacityLimited:
		return classifyCapacityLimited(cell.Value)
	case VariantBackupOnly:
		return classifyBackupOnly(cell.Value)
	case VariantRestricted:
		return classifyRestricted(cell.Value, era.Year)
	default:
		return classifyStandard(cell.Value)
	}
}
