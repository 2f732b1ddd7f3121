package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigmatrix/internal/cache"
	"gigmatrix/internal/config"
	"gigmatrix/internal/database"
	httpapi "gigmatrix/internal/http"
	"gigmatrix/internal/notify"
	"gigmatrix/internal/service"
	"gigmatrix/internal/snapshot"

	logpkg "gigmatrix/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "gigmatrix")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting gigmatrix service",
		zap.String("http_addr", cfg.HTTP.Addr),
		zap.String("workbook", cfg.Matrix.WorkbookPath),
		zap.Bool("mqtt_enabled", cfg.MQTT.Enabled),
	)

	// 三个数据来源：矩阵工作簿、gig 数据库、日历 feed
	grid := snapshot.NewGridLoader(cfg.Matrix.WorkbookPath, cfg.Matrix.SheetPrefix, log)
	calendar := snapshot.NewCalendarClient(cfg.Calendar.FeedURL, cfg.Calendar.Timeout, log)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to gig database", zap.Error(err))
	}
	bookings := snapshot.NewPostgresBookingRepository(db)
	leadRepo := snapshot.NewPostgresLeadRepository(db, log)

	fetcher := snapshot.NewFetcher(grid, bookings, leadRepo, calendar, cfg.Fetch.Timeout, log)

	redisClient := cache.NewRedisClient(&cfg.Redis)
	snapCache := cache.NewSnapshotCache(redisClient, cfg.Cache.TTL, time.Now, log)
	provider := service.NewSnapshotProvider(fetcher, snapCache, log)

	availability := service.NewAvailabilityService(provider, log)
	reconciler := service.NewReconcileService(provider, log)
	leadsSvc := service.NewLeadsService(leadRepo, log)
	writer := snapshot.NewGridWriter(cfg.Matrix.WorkbookPath, cfg.Matrix.SheetPrefix, log)
	bookingSvc := service.NewBookingService(grid, calendar, writer, log)

	router := httpapi.NewRouter(log)
	router.RegisterAvailabilityRoutes(httpapi.NewAvailabilityHandler(availability, log))
	router.RegisterReconcileRoutes(httpapi.NewReconcileHandler(reconciler, log))
	router.RegisterLeadsRoutes(httpapi.NewLeadsHandler(leadsSvc, log))
	router.RegisterBookingRoutes(httpapi.NewBookingHandler(bookingSvc, log))
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// MQTT 触发对账，可选
	var mqttClient *notify.Client
	var trigger *notify.Trigger
	if cfg.MQTT.Enabled {
		mqttClient, err = notify.NewClient(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		trigger = notify.NewTrigger(cfg, mqttClient, reconciler, log)
		go func() {
			if err := trigger.Start(ctx); err != nil {
				log.Error("MQTT trigger stopped", zap.Error(err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		log.Error("HTTP server error", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)

	if trigger != nil {
		_ = trigger.Stop(shutdownCtx)
	}
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	_ = redisClient.Close()
	_ = db.Close()

	log.Info("Service stopped")
}
