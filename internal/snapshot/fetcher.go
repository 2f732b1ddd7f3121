package snapshot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gigmatrix/internal/domain"
	"gigmatrix/internal/normalize"
)

// Bundle 一次抓取得到的快照集合。任一来源失败只标记缺失，其余照常可用
type Bundle struct {
	Year      int
	From, To  time.Time
	FetchedAt time.Time

	Matrix    *MatrixSnapshot
	Store     []normalize.StoreRecord
	Calendar  []normalize.CalendarEvent
	Inquiries []domain.InquiryRow

	Missing  []domain.Source // 本次抓取失败的对账来源
	Warnings []string
}

// Has 该来源本次是否可用
func (b *Bundle) Has(src domain.Source) bool {
	for _, m := range b.Missing {
		if m == src {
			return false
		}
	}
	return true
}

// Fetcher 并行抓取三个来源，各自独立超时
type Fetcher struct {
	grid     GridSource
	bookings BookingRepository
	leads    LeadRepository
	calendar CalendarSource
	timeout  time.Duration
	logger   *zap.Logger
}

// NewFetcher 创建抓取器。timeout 为单一来源的抓取上限
func NewFetcher(grid GridSource, bookings BookingRepository, leads LeadRepository, calendar CalendarSource, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		grid: grid, bookings: bookings, leads: leads, calendar: calendar,
		timeout: timeout, logger: logger,
	}
}

// Fetch 抓取一个表年在 [from, to] 范围内的全部快照
// 来源间互不阻塞；失败的来源进入 Bundle.Missing，绝不中止整次抓取
func (f *Fetcher) Fetch(ctx context.Context, year int, from, to time.Time) *Bundle {
	bundle := &Bundle{Year: year, From: from, To: to, FetchedAt: time.Now()}

	var mu sync.Mutex
	var wg sync.WaitGroup

	markMissing := func(src domain.Source, err error) {
		mu.Lock()
		defer mu.Unlock()
		bundle.Missing = append(bundle.Missing, src)
		f.logger.Warn("snapshot source unavailable",
			zap.String("source", string(src)),
			zap.Error(err),
		)
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		fctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		snap, err := f.grid.Load(fctx, year)
		if err != nil {
			markMissing(domain.SourceMatrix, err)
			return
		}
		mu.Lock()
		bundle.Matrix = snap
		bundle.Warnings = append(bundle.Warnings, snap.Warnings...)
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		fctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		records, err := f.bookings.Bookings(fctx, from, to)
		if err != nil {
			markMissing(domain.SourceGigDB, err)
			return
		}
		mu.Lock()
		bundle.Store = records
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		fctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		events, err := f.calendar.Events(fctx, from, to)
		if err != nil {
			markMissing(domain.SourceCalendar, err)
			return
		}
		mu.Lock()
		bundle.Calendar = events
		mu.Unlock()
	}()

	// 询价日志不是对账来源，失败只降级为告警
	if f.leads != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()
			rows, err := f.leads.Inquiries(fctx, from, to)
			if err != nil {
				mu.Lock()
				bundle.Warnings = append(bundle.Warnings, "venue inquiry lookup unavailable")
				mu.Unlock()
				f.logger.Warn("lead inquiries unavailable", zap.Error(err))
				return
			}
			mu.Lock()
			bundle.Inquiries = rows
			mu.Unlock()
		}()
	}

	wg.Wait()
	return bundle
}
