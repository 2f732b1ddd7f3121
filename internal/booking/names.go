package booking

import "strings"

// ClientDisplay 日历标题用的客户简称
// 新人组合 "Catherine MacDougall and Jacob Asmuth" 缩成 "Catherine and Jacob"，
// 只在 and 两侧都至少两个词时缩写；"Tom and Jerry"、公司/家庭名原样返回
func ClientDisplay(full string) string {
	full = strings.TrimSpace(full)
	parts := strings.SplitN(full, " and ", 2)
	if len(parts) != 2 {
		return full
	}
	left := strings.Fields(parts[0])
	right := strings.Fields(parts[1])
	if len(left) < 2 || len(right) < 2 {
		return full
	}
	return left[0] + " and " + right[0]
}
