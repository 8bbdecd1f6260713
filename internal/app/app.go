package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/config"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/filestore"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/records"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/redis"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/sqlite"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/service"
)

const (
	TrainsKey = "trains.json"
	UsersKey  = "users.json"
)

// App holds the long-lived directories shared by every command in a process.
type App struct {
	Trains  *service.TrainDirectory
	Users   *service.UserDirectory
	Booking *service.BookingEngine
	cleanup func() error
}

// New opens the configured backend and loads both directories.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	blobs, cleanup, err := setupBlobs(ctx, cfg)
	if err != nil {
		return nil, err
	}

	policy, err := records.ParsePolicy(cfg.CorruptPolicy)
	if err != nil {
		cleanup()
		return nil, err
	}

	trains, err := service.NewTrainDirectory(ctx, records.New[domain.Train](blobs, TrainsKey, policy))
	if err != nil {
		cleanup()
		return nil, err
	}

	var tokens *service.TokenIssuer
	if cfg.TokenSecret != "" {
		tokens = service.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	}
	users, err := service.NewUserDirectory(ctx,
		records.New[domain.User](blobs, UsersKey, policy),
		service.NewPasswordHasher(cfg.BcryptCost),
		tokens,
		service.NewTokenBucket(cfg.LoginRate, cfg.LoginBurst),
	)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &App{
		Trains:  trains,
		Users:   users,
		Booking: service.NewBookingEngine(trains, users),
		cleanup: cleanup,
	}, nil
}

// Close releases the backend connection.
func (a *App) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}

func setupBlobs(ctx context.Context, cfg config.Config) (domain.BlobStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Debug("sqlite backend ready", "path", cfg.SQLitePath)
		return db.Blobs(), db.Close, nil

	case config.BackendRedis:
		store, err := redis.New(redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		if err := migrate(ctx, store); err != nil {
			store.Close()
			return nil, nil, err
		}
		slog.Debug("redis backend ready", "addr", cfg.Redis.Addr)
		return store, store.Close, nil

	default:
		slog.Debug("file backend ready", "dir", cfg.DataDir)
		return filestore.New(cfg.DataDir), func() error { return nil }, nil
	}
}

func migrate(ctx context.Context, db domain.Database) error {
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
