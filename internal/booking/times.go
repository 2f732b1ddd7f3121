package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 场地类事件的接场拆场常量（分钟）
const teardownMinutes = 60

// ArrivalOffset 按音响套件算 DJ 提前到场的分钟数
// 四声道设备 120；无主音响 60（带仪式音响 90）；其余标准套件 90（带仪式音响 120）
func ArrivalOffset(soundType string, hasCeremonySound bool) int {
	s := strings.ToUpper(soundType)
	switch {
	case strings.Contains(s, "QUAD"):
		return 120
	case strings.Contains(s, "NO MAIN SOUND"):
		if hasCeremonySound {
			return 90
		}
		return 60
	default:
		if hasCeremonySound {
			return 120
		}
		return 90
	}
}

// ClockTime 24 小时制时刻
type ClockTime struct {
	Hour, Minute int
}

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

// ConvertTimes 把裸 12 小时制起止时间推断成 24 小时制
// 起始 9-12 点按上午读，1-8 点按下午/晚上读；结束时间按半天一跳找到
// 第一个晚于起始的时刻；到或过午夜一律封顶 23:59（已知歧义，留给人工修正）
func ConvertTimes(startRaw, endRaw string) (ClockTime, ClockTime, error) {
	start, err := parseClock(startRaw)
	if err != nil {
		return ClockTime{}, ClockTime{}, fmt.Errorf("start time: %w", err)
	}
	end, err := parseClock(endRaw)
	if err != nil {
		return ClockTime{}, ClockTime{}, fmt.Errorf("end time: %w", err)
	}

	if start.Hour < 9 {
		start.Hour += 12
	}

	endMin := end.minutes()
	for endMin <= start.minutes() {
		endMin += 12 * 60
	}
	if endMin >= 24*60 {
		return start, ClockTime{23, 59}, nil
	}
	return start, ClockTime{endMin / 60, endMin % 60}, nil
}

func parseClock(raw string) (ClockTime, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("malformed time %q", raw)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 1 || h > 12 {
		return ClockTime{}, fmt.Errorf("malformed time %q", raw)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("malformed time %q", raw)
	}
	return ClockTime{h, m}, nil
}

// EventWindow 由演出起止时间推出日历事件的起止
// 开始 = 演出开始 - 到场提前量；结束 = 演出结束 + 拆场 60 分钟，封顶 23:59
func EventWindow(date time.Time, startRaw, endRaw, soundType string, hasCeremonySound bool) (time.Time, time.Time, error) {
	start, end, err := ConvertTimes(startRaw, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	offset := ArrivalOffset(soundType, hasCeremonySound)
	startMin := start.minutes() - offset
	if startMin < 0 {
		startMin = 0
	}
	endMin := end.minutes() + teardownMinutes
	if endMin >= 24*60 {
		endMin = 23*60 + 59
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(startMin) * time.Minute),
		day.Add(time.Duration(endMin) * time.Minute), nil
}
