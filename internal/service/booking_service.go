package service

import (
	"context"
	"fmt"
	"strings"

	"gigmatrix/internal/booking"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

// PlanApplier 把通过闸门的计划写回矩阵；snapshot.GridWriter 满足此接口
type PlanApplier interface {
	Apply(plan *booking.Plan) error
}

// BookingService 预订登记服务接口
type BookingService interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanResult, error)
}

// PlanRequest 预订登记请求
type PlanRequest struct {
	Request       booking.Request `json:"request"`
	AllowMultiple bool            `json:"allow_multiple"` // 确认当日加订
	Backup        string          `json:"backup"`         // 可选：指派的 backup DJ 名
	Apply         bool            `json:"apply"`          // true 则写回矩阵，否则只演练
}

// PlanResult 预订登记结果
type PlanResult struct {
	Plan    *booking.Plan `json:"plan"`
	Applied bool          `json:"applied"`
}

// bookingService 实现
// 计数闸门必须基于最新数据，所以这里直抓矩阵与日历，不走小时缓存
type bookingService struct {
	grid     snapshot.GridSource
	calendar snapshot.CalendarSource
	writer   PlanApplier // 可为 nil，此时只支持演练
	logger   *zap.Logger
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(grid snapshot.GridSource, calendar snapshot.CalendarSource, writer PlanApplier, logger *zap.Logger) BookingService {
	return &bookingService{grid: grid, calendar: calendar, writer: writer, logger: logger}
}

// Plan 校验并规划一条预订，apply 时写回矩阵
func (s *bookingService) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	// 1. 参数验证
	if req.Request.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	year := req.Request.Date.Year()
	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}

	// 2. 直抓目标日期的矩阵行与日历事件
	snap, err := s.grid.Load(ctx, year)
	if err != nil {
		s.logger.Error("matrix load failed for booking",
			zap.Int("year", year),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load matrix for booking: %w", err)
	}
	md, err := snap.Day(req.Request.Date)
	if err != nil {
		return nil, err
	}

	events, err := s.calendar.Events(ctx, req.Request.Date, req.Request.Date)
	if err != nil {
		s.logger.Error("calendar load failed for booking",
			zap.String("date", domain.DateKey(req.Request.Date)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load calendar for booking: %w", err)
	}
	var titles []string
	for _, ev := range events {
		if ev.Date.Year() == req.Request.Date.Year() && ev.Date.YearDay() == req.Request.Date.YearDay() {
			titles = append(titles, ev.Title)
		}
	}

	// 3. 解析 backup 选择
	opts := booking.Options{AllowMultiple: req.AllowMultiple}
	if name := strings.TrimSpace(req.Backup); name != "" {
		b := domain.ByName(name)
		if b == domain.Unknown || b == domain.Unassigned {
			return nil, fmt.Errorf("%w: backup %q", ErrUnknownResource, name)
		}
		opts.Backup = b
	}

	// 4. 规划。闸门不通过时错误原样上抛，边界层按类型映射状态码
	row := booking.MatrixRow{
		Row:     md.Row,
		Cells:   md.Values,
		Bold:    md.Bold,
		Pending: md.Pending,
		Hold:    md.Hold,
	}
	plan, err := booking.BuildPlan(era, req.Request, row, titles, opts)
	if err != nil {
		s.logger.Warn("booking plan rejected",
			zap.String("date", domain.DateKey(req.Request.Date)),
			zap.String("resource", req.Request.ResourceName),
			zap.Error(err),
		)
		return nil, err
	}

	// 5. 落盘（可选）
	result := &PlanResult{Plan: plan}
	if req.Apply {
		if s.writer == nil {
			return nil, fmt.Errorf("matrix writer not configured")
		}
		if err := s.writer.Apply(plan); err != nil {
			s.logger.Error("booking plan apply failed",
				zap.String("date", domain.DateKey(plan.Date)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to apply booking plan: %w", err)
		}
		result.Applied = true
	}

	s.logger.Info("booking planned",
		zap.String("date", domain.DateKey(plan.Date)),
		zap.String("resource", string(plan.Resource)),
		zap.Bool("unassigned", plan.Unassigned),
		zap.Bool("applied", result.Applied),
		zap.Int("warnings", len(plan.Warnings)),
	)
	return result, nil
}
