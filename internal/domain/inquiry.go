package domain

import (
	"strings"
	"time"
)

// Resolution 线索（场地询价）的处理结果，封闭枚举
type Resolution string

const (
	ResolutionBooked    Resolution = "Booked"
	ResolutionDidntBook Resolution = "Didn't Book"
	ResolutionDeclined  Resolution = "Declined"
	ResolutionCold      Resolution = "Cold"
	ResolutionGhosted   Resolution = "Ghosted"
	ResolutionCanceled  Resolution = "Canceled"
)

// ParseResolution 不区分大小写地解析处理结果；未知文本返回 ok=false
func ParseResolution(s string) (Resolution, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "booked":
		return ResolutionBooked, true
	case "didn't book", "didnt book":
		return ResolutionDidntBook, true
	case "declined":
		return ResolutionDeclined, true
	case "cold":
		return ResolutionCold, true
	case "ghosted":
		return ResolutionGhosted, true
	case "canceled", "cancelled":
		return ResolutionCanceled, true
	}
	return "", false
}

// InquiryRow 线索日志中的一行。日志只追加，规范化结果由 leads 包派生，永不回写
type InquiryRow struct {
	Date       time.Time  `json:"date"`
	Venue      string     `json:"venue"`
	Resolution Resolution `json:"resolution"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
