// Package booking 预订规划器：校验一条新预订并规划（绝不执行）对矩阵与
// 日历的写入。计数闸门不通过时整个计划作废，这是硬性校验错误。
package booking

import (
	"strconv"
	"strings"
)

// CountBookedEvents 数出单元格里已登记的预订次数
// "" / "OUT" → 0；"BOOKED" → 1；"BOOKED x 2" → 2
func CountBookedEvents(cell string) int {
	v := strings.ToUpper(strings.TrimSpace(cell))
	if v == "" {
		return 0
	}
	if v == "BOOKED" {
		return 1
	}
	if strings.HasPrefix(v, "BOOKED X ") {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(v, "BOOKED X ")))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// IncrementBooked 具名 DJ 加订一场后的新单元格值
// "" → "BOOKED"；"BOOKED" → "BOOKED x 2"；"BOOKED x N" → "BOOKED x N+1"
// 其他值（OUT、BACKUP 等）原样返回，调用方先走闸门不会走到这里
func IncrementBooked(cell string) string {
	v := strings.ToUpper(strings.TrimSpace(cell))
	if v == "" {
		return "BOOKED"
	}
	if v == "BOOKED" {
		return "BOOKED x 2"
	}
	if strings.HasPrefix(v, "BOOKED X ") {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(v, "BOOKED X ")))
		if err != nil {
			return "BOOKED x 2"
		}
		return "BOOKED x " + strconv.Itoa(n+1)
	}
	return strings.TrimSpace(cell)
}

// IncrementPending 未指派预订写入 TBA 列后的新值，保留位标记原样保留在尾部
// "" → "BOOKED"；"AAG" → "BOOKED, AAG"；"BOOKED, AAG" → "BOOKED x 2, AAG"
func IncrementPending(cell string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return "BOOKED"
	}

	var holds, booked []string
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.ToUpper(part) == "AAG" {
			holds = append(holds, part)
		} else {
			booked = append(booked, part)
		}
	}

	var next string
	switch {
	case len(booked) == 0:
		return "BOOKED, " + strings.Join(holds, ", ")
	case len(booked) == 1:
		bp := strings.ToUpper(booked[0])
		if bp == "BOOKED" {
			next = "BOOKED x 2"
		} else if strings.HasPrefix(bp, "BOOKED X ") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(bp, "BOOKED X ")))
			if err != nil {
				next = "BOOKED x 2"
			} else {
				next = "BOOKED x " + strconv.Itoa(n+1)
			}
		} else {
			next = "BOOKED x 2"
		}
	default:
		next = booked[0]
	}

	if len(holds) > 0 {
		return next + ", " + strings.Join(holds, ", ")
	}
	return next
}
