// matrix-check 终端可用性查询工具
// 不带参数时列出全年各日期的空位概况，-date / -dj / -fully-booked 切换查询模式
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gigmatrix/internal/config"
	"gigmatrix/internal/database"
	"gigmatrix/internal/report"
	"gigmatrix/internal/service"
	"gigmatrix/internal/snapshot"

	logpkg "gigmatrix/internal/logger"

	"go.uber.org/zap"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "matrix year to query")
	date := flag.String("date", "", "single date to check (MM-DD)")
	dj := flag.String("dj", "", "DJ name for a per-DJ schedule query")
	start := flag.String("start", "", "range start (MM-DD or YYYY-MM-DD), defaults to Jan 1")
	end := flag.String("end", "", "range end (MM-DD or YYYY-MM-DD), defaults to Dec 31")
	day := flag.String("day", "", "weekday filter: weekend, weekday or a day name")
	minSpots := flag.Int("min-spots", 1, "minimum available spots for range queries")
	fullyBooked := flag.Bool("fully-booked", false, "list fully booked dates in the range")
	flag.Parse()

	cfg := config.Load()

	// CLI 输出保持干净，需要更多日志时用 LOG_LEVEL 打开
	level := cfg.Log.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "error"
	}
	log, err := logpkg.NewLogger(level, "console", "matrix-check")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	grid := snapshot.NewGridLoader(cfg.Matrix.WorkbookPath, cfg.Matrix.SheetPrefix, log)
	calendar := snapshot.NewCalendarClient(cfg.Calendar.FeedURL, cfg.Calendar.Timeout, log)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to gig database", zap.Error(err))
	}
	defer db.Close()

	fetcher := snapshot.NewFetcher(grid,
		snapshot.NewPostgresBookingRepository(db),
		snapshot.NewPostgresLeadRepository(db, log),
		calendar, cfg.Fetch.Timeout, log)

	// 一次性查询不走 Redis 缓存，直接取最新快照
	provider := service.NewSnapshotProvider(fetcher, nil, log)
	availability := service.NewAvailabilityService(provider, log)

	ctx := context.Background()

	from, err := parseDay(*year, *start, time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC))
	failOn(err)
	to, err := parseDay(*year, *end, time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC))
	failOn(err)

	switch {
	case *date != "":
		month, dayNum, err := splitMonthDay(*date)
		failOn(err)
		rep, err := availability.CheckDate(ctx, *year, month, dayNum)
		failOn(err)
		fmt.Print(report.Availability(rep))
	case *dj != "":
		rep, err := availability.ResourceRange(ctx, *dj, *year, from, to)
		failOn(err)
		fmt.Print(report.Schedule(rep))
	case *fullyBooked:
		rep, err := availability.FullyBooked(ctx, *year, from, to)
		failOn(err)
		fmt.Print(report.FullyBooked(rep))
	default:
		rep, err := availability.QueryRange(ctx, *year, service.RangeQuery{
			From: from, To: to, Day: *day, MinSpots: *minSpots,
		})
		failOn(err)
		fmt.Print(report.RangeSummary(rep))
	}
}

// parseDay 接受 MM-DD（套用查询年份）或完整的 YYYY-MM-DD
func parseDay(year int, s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want MM-DD or YYYY-MM-DD", s)
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func splitMonthDay(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid date %q, want MM-DD", s)
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid date %q, want MM-DD", s)
	}
	return month, day, nil
}

func failOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
