package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/config"
	"github.com/mamadbah2/foodtracker/internal/idgen"
	"github.com/mamadbah2/foodtracker/internal/notify"
	"github.com/mamadbah2/foodtracker/internal/repository/mongodb"
	redisslot "github.com/mamadbah2/foodtracker/internal/repository/redis"
	"github.com/mamadbah2/foodtracker/internal/repository/sheets"
	"github.com/mamadbah2/foodtracker/internal/repository/slot"
	"github.com/mamadbah2/foodtracker/internal/scheduler"
	"github.com/mamadbah2/foodtracker/internal/server/handlers"
	"github.com/mamadbah2/foodtracker/internal/server/router"
	reportingsvc "github.com/mamadbah2/foodtracker/internal/service/reporting"
	"github.com/mamadbah2/foodtracker/internal/service/tracker"
	"github.com/mamadbah2/foodtracker/internal/store"
	"github.com/mamadbah2/foodtracker/internal/view"
	"github.com/mamadbah2/foodtracker/pkg/clients/webhook"
	"github.com/mamadbah2/foodtracker/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	backend, closeBackend, err := openSlot(context.Background(), cfg, logger.Named(baseLogger, "repo.slot"))
	if err != nil {
		baseLogger.Fatal("failed to init state storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeBackend()

	ids := idgen.New(idgen.WithLogger(logger.Named(baseLogger, "idgen")))
	st := store.New(backend, cfg.Storage.Key, ids, logger.Named(baseLogger, "store"))
	st.Load(context.Background())

	banner := notify.NewBanner(notify.DefaultDuration)
	defer banner.Stop()

	trackerSvc, err := tracker.NewTracker(st, banner, logger.Named(baseLogger, "svc.tracker"))
	if err != nil {
		baseLogger.Fatal("failed to init tracker", zap.Error(err))
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		baseLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	} else {
		baseLogger.Warn("spreadsheet id missing, snapshot export disabled")
	}

	var digest webhook.Client
	if cfg.Reporting.DigestWebhookURL != "" {
		client, err := webhook.NewClient(cfg.Reporting.DigestWebhookURL)
		if err != nil {
			baseLogger.Fatal("failed to init digest webhook", zap.Error(err))
		}
		digest = client
		baseLogger.Info("digest webhook enabled")
	}

	reportingSvc := reportingsvc.NewService(sheetsRepo, cfg.Reporting.LowStockThreshold, logger.Named(baseLogger, "svc.reporting"))

	trackerHandler := handlers.NewTrackerHandler(trackerSvc, renderer, banner, reportingSvc, notify.DefaultDuration, logger.Named(baseLogger, "handlers.tracker"))
	engine := router.New(trackerHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Reporting, trackerSvc, reportingSvc, digest, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openSlot builds the state storage selected by STORAGE_DRIVER.
func openSlot(ctx context.Context, cfg *config.Config, log *zap.Logger) (slot.Slot, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, state is lost on restart")
		return slot.NewMemory(0), noop, nil
	case config.StorageFile:
		backend, err := slot.NewFile(cfg.Storage.Dir, log)
		if err != nil {
			return nil, noop, err
		}
		return backend, noop, nil
	case config.StorageRedis:
		backend, err := redisslot.NewSlot(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return backend, func() {
			if err := backend.Close(); err != nil {
				log.Error("failed to close redis connection", zap.Error(err))
			}
		}, nil
	case config.StorageMongo:
		backend, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection)
		if err != nil {
			return nil, noop, err
		}
		return backend, func() {
			if err := backend.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
