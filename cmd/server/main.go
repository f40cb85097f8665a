package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/logger"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
	"github.com/iliyamo/shareit/internal/repository/memory"
	"github.com/iliyamo/shareit/internal/repository/mysql"
	"github.com/iliyamo/shareit/internal/router"
	"github.com/iliyamo/shareit/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, pinger, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unreachable, cache and rate limit disabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		events = queue.NewPublisher(cfg.RabbitURL, log)
	}
	if cfg.ConsumerEnabled {
		consumer := queue.NewConsumer(cfg.RabbitURL, cfg.BookingLogPath, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := router.New(router.Handlers{
		Users:    &handler.UserHandler{Svc: service.NewUserService(store, log), Log: log},
		Items:    &handler.ItemHandler{Svc: service.NewItemService(store, log), Log: log},
		Bookings: &handler.BookingHandler{Svc: service.NewBookingService(store, events, log), Log: log},
		Requests: &handler.RequestHandler{Svc: service.NewRequestService(store, log), Log: log},
	}, router.Options{
		Log:       log,
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     cfg.Cache,
		RateLimit: cfg.RateLimit,
		Metrics:   cfg.MetricsEnabled,
		DB:        pinger,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("storage", cfg.StorageDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("stopped")
}

// openStore builds the storage backend named by STORAGE_DRIVER.  The
// returned pinger is nil for the memory store.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Store, handler.Pinger, error) {
	if cfg.StorageDriver != config.DriverMySQL {
		return memory.New(), nil, nil
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("schema applied", zap.String("db", cfg.DBName))
	}
	return mysql.New(db), db, nil
}
