package aggregate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
)

// Pending TBA 列解析结果
type Pending struct {
	Count    int  // 未指派预订数（BOOKED / BOOKED x N）
	Hold     bool // AAG 标记：未指派池的保留位
	Warnings []string
}

// ParsePending 解析 TBA 列原文
// "" → 0；"BOOKED" → 1；"BOOKED x N" → N；"AAG" 记为保留位；
// "BOOKED x 2, AAG" 两者兼有。无法识别的片段产生告警并忽略
func ParsePending(raw string) Pending {
	p := Pending{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return p
	}
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		upper := strings.ToUpper(part)
		switch {
		case upper == "AAG":
			p.Hold = true
		case upper == "BOOKED":
			p.Count++
		case strings.HasPrefix(upper, "BOOKED X"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(upper, "BOOKED X")))
			if err != nil || n < 1 {
				// 重数无法解析时按单次预订计
				p.Count++
				p.Warnings = append(p.Warnings, fmt.Sprintf("unparseable pending multiplier %q, counting one", part))
				continue
			}
			p.Count += n
		default:
			p.Warnings = append(p.Warnings, fmt.Sprintf("unrecognized pending token %q, ignored", part))
		}
	}
	return p
}

// Cell 单日内一名 DJ 的已分类单元格
type Cell struct {
	Resource domain.Resource
	Parsed   rules.Cell
	Class    rules.Classification
}

// Summary 单日聚合结果
type Summary struct {
	Date           time.Time         `json:"date"`
	AvailableSpots int               `json:"available_spots"`
	FullyBooked    bool              `json:"fully_booked"`
	BookedCount    int               `json:"booked_count"`
	PendingCount   int               `json:"pending_count"`
	HoldActive     bool              `json:"hold_active"`
	Bookable       []domain.Resource `json:"bookable"`
	BackupEligible []domain.Resource `json:"backup_eligible"`
	BackupAssigned []domain.Resource `json:"backup_assigned"`
	Maybe          []domain.Resource `json:"maybe,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// BackupCovered 已有 backup 指派，或仍有人可以顶 backup
func (s *Summary) BackupCovered() bool {
	return len(s.BackupAssigned) > 0 || len(s.BackupEligible) > 0
}

// Aggregate 汇总一天的已分类单元格与两列管理数据，得出可用名额
// 名额 = 可预订人数 - 未指派预订数 - (保留位生效 ? 1 : 0)，下限 0
// 未指派池与具名 DJ 的保留位互斥：两者同时出现按占用一个名额计并告警
func Aggregate(era *rules.Era, date time.Time, cells []Cell, pendingRaw, holdRaw string) Summary {
	s := Summary{Date: date}

	pending := ParsePending(pendingRaw)
	s.PendingCount = pending.Count
	s.Warnings = append(s.Warnings, pending.Warnings...)

	namedHold := false
	for _, c := range cells {
		if c.Class.Warning != "" {
			s.Warnings = append(s.Warnings, c.Class.Warning)
		}
		if c.Parsed.Known {
			switch c.Parsed.Value {
			case rules.ValueBooked:
				s.BookedCount += c.Parsed.Count
			case rules.ValueStanford:
				// 场地直签也是一场确认预订
				s.BookedCount++
			case rules.ValueBackup:
				s.BackupAssigned = append(s.BackupAssigned, c.Resource)
			case rules.ValueReserved:
				namedHold = true
			}
		}
		if c.Class.Bookable {
			s.Bookable = append(s.Bookable, c.Resource)
		}
		if c.Class.BackupEligible {
			s.BackupEligible = append(s.BackupEligible, c.Resource)
		}
		if c.Class.Category == rules.CategoryMaybe {
			s.Maybe = append(s.Maybe, c.Resource)
		}
	}
	s.BookedCount += pending.Count

	poolHold := pending.Hold
	if era.HasHoldColumn() && strings.EqualFold(strings.TrimSpace(holdRaw), string(rules.ValueReserved)) {
		poolHold = true
	}
	s.HoldActive = poolHold || namedHold
	if poolHold && namedHold {
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("reservation hold recorded for both the unassigned pool and a named DJ on %s, counting one slot", domain.DateKey(date)))
	}

	spots := len(s.Bookable) - pending.Count
	if s.HoldActive {
		spots--
	}
	if spots < 0 {
		spots = 0
	}
	s.AvailableSpots = spots
	s.FullyBooked = spots == 0
	return s
}
