package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yaghiashraf/pet-alert/internal/api"
	"github.com/yaghiashraf/pet-alert/internal/config"
	"github.com/yaghiashraf/pet-alert/internal/geoindex"
	"github.com/yaghiashraf/pet-alert/internal/lifecycle"
	"github.com/yaghiashraf/pet-alert/internal/redis"
	"github.com/yaghiashraf/pet-alert/internal/service"
	"github.com/yaghiashraf/pet-alert/internal/storage/postgres"
	"github.com/yaghiashraf/pet-alert/pkg/logger"
)

type Components struct {
	logger       *slog.Logger
	HttpServer   *api.Server
	Postgres     *postgres.Postgres
	Redis        *redis.Redis
	NotifyQ      *redis.NotifyQueue
	NotifySender *service.NotifySender
	GeoIndex     *geoindex.Index
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	var (
		redisClient  *redis.Redis
		notifyQueue  *redis.NotifyQueue
		notifySender *service.NotifySender
	)
	if !cfg.Notify.Disabled {
		logger.Info("Initializing Redis")
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			storage.Pool.Close()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		notifyQueue = redis.NewNotifyQueue(redisClient.Client, "notify:queue")
		notifySender = service.NewNotifySender(logger, cfg.Notify, notifyQueue)
	} else {
		logger.Warn("Notifications disabled, intents will be dropped")
	}

	geo := geoindex.New()
	engine := lifecycle.NewEngine(storage.AlertStore())

	// The index is a derived projection; rebuild it from the store before
	// serving any query.
	if err := service.RebuildIndex(ctx, storage.AlertStore(), geo, logger); err != nil {
		storage.Pool.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("failed to rebuild geo index: %w", err)
	}

	var notifyQ service.NotifyQueue
	if notifyQueue != nil {
		notifyQ = notifyQueue
	}

	publicSvc := service.NewPublicAlertService(
		storage.AlertStore(), storage.ReportStore(), geo, engine, notifyQ, logger,
		cfg.Search.DefaultRadiusKM,
	)
	adminSvc := service.NewAdminAlertService(storage.AlertStore(), geo, engine, logger)
	statsSvc := service.NewStatsService(storage.Stats(), geo)

	srv := service.NewService(publicSvc, adminSvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	return &Components{
		logger:       logger,
		HttpServer:   httpServer,
		Postgres:     storage,
		Redis:        redisClient,
		NotifyQ:      notifyQueue,
		NotifySender: notifySender,
		GeoIndex:     geo,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
