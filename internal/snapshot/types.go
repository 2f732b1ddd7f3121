// Package snapshot 从三个外部系统抓取只读快照：可用性矩阵（xlsx）、
// gig 数据库（PostgreSQL）、主日历（HTTP feed）。三个来源保持权威，
// 本包只取不改；唯一的写路径是 GridWriter 按预订计划回写矩阵单元格。
package snapshot

import (
	"context"
	"errors"
	"time"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/normalize"
)

// ErrDateNotFound 矩阵中没有该日期的行
var ErrDateNotFound = errors.New("date not found in matrix sheet")

// MatrixDay 矩阵中一个日期行的快照。Values 保留单元格原文，分类在上层做
type MatrixDay struct {
	Date    time.Time
	Row     int // 表内 1 起始行号，回写时使用
	Values  map[domain.Resource]string
	Bold    map[domain.Resource]bool
	Pending string // TBA 列原文
	Hold    string // AAG 列原文；无此列的时代恒为空
}

// MatrixSnapshot 一个表年的完整矩阵快照
type MatrixSnapshot struct {
	Year      int
	Days      []MatrixDay
	FetchedAt time.Time
	Warnings  []string // 跳过的畸形行等非致命问题

	byKey map[string]int
}

func (s *MatrixSnapshot) index() {
	s.byKey = make(map[string]int, len(s.Days))
	for i, d := range s.Days {
		s.byKey[domain.DateKey(d.Date)] = i
	}
}

// Day 按日期取行
func (s *MatrixSnapshot) Day(date time.Time) (*MatrixDay, error) {
	if s.byKey == nil {
		s.index()
	}
	i, ok := s.byKey[domain.DateKey(date)]
	if !ok {
		return nil, ErrDateNotFound
	}
	return &s.Days[i], nil
}

// Between 日期范围内的行，保持表内顺序
func (s *MatrixSnapshot) Between(from, to time.Time) []MatrixDay {
	var out []MatrixDay
	for _, d := range s.Days {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// BookingRepository gig 数据库的已确认预订
type BookingRepository interface {
	Bookings(ctx context.Context, from, to time.Time) ([]normalize.StoreRecord, error)
}

// LeadRepository gig 数据库的场地询价日志
type LeadRepository interface {
	Inquiries(ctx context.Context, from, to time.Time) ([]domain.InquiryRow, error)
}

// CalendarSource 主日历事件
type CalendarSource interface {
	Events(ctx context.Context, from, to time.Time) ([]normalize.CalendarEvent, error)
}

// GridSource 可用性矩阵
type GridSource interface {
	Load(ctx context.Context, year int) (*MatrixSnapshot, error)
}
