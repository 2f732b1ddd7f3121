package rules

import (
	"fmt"
	"sort"

	"gigmatrix/internal/domain"
)

// Variant DJ 在某个规则时代适用的规则变体
// 规则表只在本包维护一份，所有界面共用，禁止在别处复制
type Variant int

const (
	// VariantStandard 空白即可预订
	VariantStandard Variant = iota
	// VariantWeekendOnly 周末空白可预订，工作日空白仅可 backup
	VariantWeekendOnly
	// VariantWeekendPreference OUT 在周末且非加粗时仍可 backup，加粗为硬性不可用
	VariantWeekendPreference
	// VariantCapacityLimited 空白不自动计入可用（需确认，展示为 maybe）
	VariantCapacityLimited
	// VariantBackupOnly 空白仅可 backup，显式 OK 才可预订
	VariantBackupOnly
	// VariantRestricted 本时代不参与排班
	VariantRestricted
)

// Era 一个表年的规则时代：列布局、每名 DJ 的规则变体、backup 候选名单
// 新时代只增不改
type Era struct {
	Year int

	// 1 起始列号，与电子表格列字母对应
	DateColumn    int
	PendingColumn int // TBA 列（未指派预订计数）
	HoldColumn    int // AAG 列（场地保留位）；0 表示该时代没有此列
	Columns       map[domain.Resource]int

	variants       map[domain.Resource]Variant
	backupEligible []domain.Resource
}

var eras = map[int]*Era{
	2025: {
		Year:          2025,
		DateColumn:    1,
		PendingColumn: 9,
		HoldColumn:    0,
		Columns: map[domain.Resource]int{
			domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
			domain.Stefano: 7, domain.Felipe: 8, domain.Stephanie: 11,
		},
		variants: map[domain.Resource]Variant{
			domain.Henry:     VariantWeekendOnly,
			domain.Woody:     VariantWeekendPreference,
			domain.Paul:      VariantStandard,
			domain.Stefano:   VariantCapacityLimited,
			domain.Felipe:    VariantStandard,
			domain.Stephanie: VariantRestricted,
		},
		backupEligible: []domain.Resource{
			domain.Henry, domain.Woody, domain.Paul, domain.Stefano, domain.Felipe,
		},
	},
	2026: {
		Year:          2026,
		DateColumn:    1,
		PendingColumn: 9,
		HoldColumn:    12,
		Columns: map[domain.Resource]int{
			domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
			domain.Stefano: 7, domain.Felipe: 8, domain.Stephanie: 11,
		},
		variants: map[domain.Resource]Variant{
			domain.Henry:     VariantWeekendOnly,
			domain.Woody:     VariantWeekendPreference,
			domain.Paul:      VariantStandard,
			domain.Stefano:   VariantCapacityLimited,
			domain.Felipe:    VariantBackupOnly,
			domain.Stephanie: VariantRestricted,
		},
		backupEligible: []domain.Resource{
			domain.Henry, domain.Woody, domain.Paul, domain.Stefano, domain.Felipe,
		},
	},
	2027: {
		Year:          2027,
		DateColumn:    1,
		PendingColumn: 9,
		HoldColumn:    10,
		Columns: map[domain.Resource]int{
			domain.Henry: 4, domain.Woody: 5, domain.Paul: 6,
			domain.Stefano: 7, domain.Stephanie: 8, domain.Felipe: 12,
		},
		variants: map[domain.Resource]Variant{
			domain.Henry:     VariantWeekendOnly,
			domain.Woody:     VariantWeekendPreference,
			domain.Paul:      VariantStandard,
			domain.Stefano:   VariantCapacityLimited,
			domain.Felipe:    VariantBackupOnly,
			domain.Stephanie: VariantWeekendOnly,
		},
		backupEligible: []domain.Resource{
			domain.Henry, domain.Woody, domain.Paul, domain.Stefano, domain.Felipe, domain.Stephanie,
		},
	},
}

// ForYear 返回某年的规则时代
// 超过最新时代的年份沿用最新时代的规则表；早于最早时代的年份没有规则可用
func ForYear(year int) (*Era, error) {
	if e, ok := eras[year]; ok {
		return e, nil
	}
	latest := latestEra()
	if year > latest.Year {
		return latest, nil
	}
	return nil, fmt.Errorf("no rule era defined for year %d", year)
}

// Years 已定义的时代年份，升序
func Years() []int {
	ys := make([]int, 0, len(eras))
	for y := range eras {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	return ys
}

func latestEra() *Era {
	var latest *Era
	for _, e := range eras {
		if latest == nil || e.Year > latest.Year {
			latest = e
		}
	}
	return latest
}

// VariantOf 该时代下某 DJ 的规则变体；不在本时代排班表中的 DJ 视为 VariantRestricted
func (e *Era) VariantOf(r domain.Resource) Variant {
	if v, ok := e.variants[r]; ok {
		return v
	}
	return VariantRestricted
}

// BackupEligible 该时代可作为 backup 候选的 DJ，按矩阵列顺序
func (e *Era) BackupEligible() []domain.Resource {
	out := make([]domain.Resource, len(e.backupEligible))
	copy(out, e.backupEligible)
	return out
}

// HasHoldColumn 该时代是否有独立的 AAG 保留列
func (e *Era) HasHoldColumn() bool { return e.HoldColumn > 0 }
