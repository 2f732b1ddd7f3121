package domain

import "strings"

// Resource 花名册中的一名 DJ（封闭集合，运行时不增删）
// Unassigned 表示已确认但尚未指派 DJ 的预订（矩阵 TBA 列 / gig DB "Unassigned" / 日历 [U*]）
type Resource string

const (
	Henry      Resource = "Henry"
	Woody      Resource = "Woody"
	Paul       Resource = "Paul"
	Stefano    Resource = "Stefano"
	Felipe     Resource = "Felipe"
	Stephanie  Resource = "Stephanie"
	Unassigned Resource = "Unassigned"
	Unknown    Resource = "Unknown"
)

// Roster 全部真实 DJ，按矩阵列顺序
func Roster() []Resource {
	return []Resource{Henry, Woody, Paul, Stefano, Felipe, Stephanie}
}

// initials 日历标题里的两字母缩写
var initials = map[Resource]string{
	Henry:     "HK",
	Woody:     "WM",
	Paul:      "PB",
	Stefano:   "SB",
	Felipe:    "FS",
	Stephanie: "SD",
	Unknown:   "UP",
}

// fullNames gig 数据库使用全名，矩阵和报表使用短名
var fullNames = map[string]Resource{
	"paul burchfield":    Paul,
	"henry s. kim":       Henry,
	"woody miraglia":     Woody,
	"stefano bortolin":   Stefano,
	"felipe silva":       Felipe,
	"stephanie de jesus": Stephanie,
}

// codes gig 数据库原始导出使用的单字母/双字母代号
var codes = map[string]Resource{
	"H":  Henry,
	"P":  Paul,
	"S":  Stefano,
	"W":  Woody,
	"F":  Felipe,
	"D":  Stephanie,
	"SD": Stephanie,
	"FS": Felipe,
}

// paidBackup 有偿 backup 名单；其余 DJ backup 不计酬
var paidBackup = map[Resource]bool{
	Stefano:   true,
	Felipe:    true,
	Stephanie: true,
}

// Initials 返回日历标题用的缩写；Unassigned/Unknown 统一为 UP
func (r Resource) Initials() string {
	if r == Unassigned {
		return "UP"
	}
	if s, ok := initials[r]; ok {
		return s
	}
	return "UP"
}

// IsPaidBackup 该 DJ 做 backup 是否计酬
func (r Resource) IsPaidBackup() bool {
	return paidBackup[r]
}

// ByFullName 将 gig 数据库的全名映射为短名
// 空白 → Unknown；"Unassigned"（不区分大小写）→ Unassigned；未登记的全名 → Unknown
func ByFullName(name string) Resource {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unknown
	}
	if strings.EqualFold(name, "unassigned") {
		return Unassigned
	}
	if r, ok := fullNames[strings.ToLower(name)]; ok {
		return r
	}
	return Unknown
}

// ByName 宽松解析 DJ 名，短名与全名均可识别；空白或未登记的名字 → Unknown
func ByName(name string) Resource {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Unknown
	}
	for _, r := range Roster() {
		if strings.EqualFold(string(r), trimmed) {
			return r
		}
	}
	return ByFullName(trimmed)
}

// ByCode 将 gig 数据库原始导出的代号映射为 DJ；U 开头的代号一律视为 Unassigned
func ByCode(code string) Resource {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Unknown
	}
	if strings.HasPrefix(code, "U") {
		return Unassigned
	}
	if r, ok := codes[code]; ok {
		return r
	}
	return Unknown
}

// ByInitials 将日历标题中的括号缩写映射为 DJ；U 开头 → Unassigned
func ByInitials(in string) Resource {
	in = strings.ToUpper(strings.TrimSpace(in))
	if strings.HasPrefix(in, "U") {
		return Unassigned
	}
	for r, s := range initials {
		if r != Unknown && s == in {
			return r
		}
	}
	return Unknown
}

// UnassignedInitials 未指派预订的日历缩写：U + 原定 DJ 名首字母，无线索时为 UP
func UnassignedInitials(fullName string) string {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "UP"
	}
	first := strings.ToUpper(fullName[:1])
	if first < "A" || first > "Z" {
		return "UP"
	}
	return "U" + first
}
