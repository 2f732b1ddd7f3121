package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"gigmatrix/internal/normalize"
)

// calendarEventDTO 日历 feed 的一条事件
type calendarEventDTO struct {
	Date  string `json:"date"` // "2006-01-02"
	Title string `json:"title"`
}

// CalendarClient 主日历 HTTP feed 客户端
type CalendarClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewCalendarClient 创建日历客户端
func NewCalendarClient(feedURL string, timeout time.Duration, logger *zap.Logger) *CalendarClient {
	client := resty.New().
		SetBaseURL(feedURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &CalendarClient{httpClient: client, logger: logger}
}

var _ CalendarSource = (*CalendarClient)(nil)

// Events 日期范围内的日历事件
// 日期无法解析的事件记告警并跳过，不中断整批
func (c *CalendarClient) Events(ctx context.Context, from, to time.Time) ([]normalize.CalendarEvent, error) {
	var dtos []calendarEventDTO
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start": from.Format("2006-01-02"),
			"end":   to.Format("2006-01-02"),
		}).
		SetResult(&dtos).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode())
	}

	events := make([]normalize.CalendarEvent, 0, len(dtos))
	for _, d := range dtos {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			c.logger.Warn("skipping calendar event with unparseable date",
				zap.String("date", d.Date),
				zap.String("title", d.Title),
			)
			continue
		}
		events = append(events, normalize.CalendarEvent{Date: date, Title: d.Title})
	}

	c.logger.Info("calendar snapshot loaded",
		zap.Int("events", len(events)),
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
	)
	return events, nil
}
