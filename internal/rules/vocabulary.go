package rules

import (
	"strconv"
	"strings"
)

// Value 矩阵单元格的封闭词汇表。词汇表之外的文本一律按 Unknown 处理
type Value string

const (
	ValueBlank      Value = ""
	ValueBooked     Value = "BOOKED"
	ValueBackup     Value = "BACKUP"
	ValueOut        Value = "OUT"
	ValueMaxed      Value = "MAXED"
	ValueReserved   Value = "RESERVED"
	ValueStanford   Value = "STANFORD" // 场地直签标记，等同已预订
	ValueOK         Value = "OK"
	ValueOKToBackup Value = "OK TO BACKUP"
	ValueDad        Value = "DAD" // 家庭事务保留
	ValueLast       Value = "LAST" // 可用但最后指派
)

// Cell 解析后的单元格。分类器只看 Value/Count，从不接触原文
type Cell struct {
	Value Value
	Count int // BOOKED 的重数（"BOOKED x N"）；其他值为 0
	Known bool
	Raw   string
}

// ParseCell 将单元格原文解析为封闭枚举
// "BOOKED x N"（N≥1）解析为 ValueBooked 且 Count=N；重数非法时整体按 Unknown 处理
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Value: ValueBlank, Known: true, Raw: raw}
	}

	upper := strings.ToUpper(trimmed)
	if upper == "BOOKED" {
		return Cell{Value: ValueBooked, Count: 1, Known: true, Raw: trimmed}
	}
	if rest, ok := strings.CutPrefix(upper, "BOOKED X "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			return Cell{Raw: trimmed}
		}
		return Cell{Value: ValueBooked, Count: n, Known: true, Raw: trimmed}
	}

	switch Value(upper) {
	case ValueBackup, ValueOut, ValueMaxed, ValueReserved, ValueStanford,
		ValueOK, ValueOKToBackup, ValueDad, ValueLast:
		return Cell{Value: Value(upper), Known: true, Raw: trimmed}
	}
	return Cell{Raw: trimmed}
}
