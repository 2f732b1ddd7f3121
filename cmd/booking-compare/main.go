// booking-compare 三方预订核对工具
// 拉取矩阵、gig 数据库与日历的最新快照，输出差异分区报告
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
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
	year := flag.Int("year", time.Now().Year(), "year to compare")
	output := flag.String("output", "", "also save the report to this file")
	flag.Parse()

	cfg := config.Load()

	// CLI 输出保持干净，需要更多日志时用 LOG_LEVEL 打开
	level := cfg.Log.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "error"
	}
	log, err := logpkg.NewLogger(level, "console", "booking-compare")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	fmt.Printf("BOOKING COMPARATOR - %d\n", *year)
	fmt.Println("==================================================")

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

	// 对账要看最新状态，不走缓存
	provider := service.NewSnapshotProvider(fetcher, nil, log)
	reconciler := service.NewReconcileService(provider, log)

	fmt.Println("\nComparing systems...")
	rep, err := reconciler.Compare(context.Background(), *year)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	text := report.Comparison(rep)
	fmt.Println()
	fmt.Print(text)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Error: failed to save report:", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport saved to: %s\n", *output)
	}
}
