package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/cache"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/config"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/events"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/push"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/upload"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/worker"
)

// App holds process-wide resources. Everything here is created once at
// startup and shared by the services.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *sql.DB
	Cache    cache.Cache
	Producer events.Producer
	Pusher   *push.Client
	Uploader *upload.Client
	Pool     *worker.Pool
}

func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		dbPassword,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Redis is optional: services fall back to the database on a nil cache.
	var c cache.Cache
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", slog.Any("error", err))
	} else {
		c = redisClient
	}

	app := &App{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Cache:    c,
		Producer: events.NewProducer(log, cfg.Kafka.Brokers),
		Pusher:   push.NewClient(cfg.Push.GatewayURL, cfg.Push.BatchSize, cfg.Push.Timeout),
		Uploader: upload.NewClient(cfg.Upload.URL, cfg.Upload.Preset, cfg.Upload.Folder, cfg.Upload.Timeout),
		Pool:     worker.NewPool(cfg.Push.Workers),
	}

	return app, nil
}

// Close releases all shared resources. Safe to call once at shutdown.
func (a *App) Close() {
	a.Pool.Stop()
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			a.Logger.Error("failed to close producer", slog.Any("error", err))
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Error("failed to close cache", slog.Any("error", err))
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("failed to close database", slog.Any("error", err))
	}
}
