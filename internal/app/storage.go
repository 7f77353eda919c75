package app

import (
	"context"
	"fmt"
	"taskify/internal/config"
	"taskify/internal/logger"
	"taskify/internal/migrations"
	"taskify/internal/repository/inmemory"
	"taskify/internal/repository/mongodb"
	"taskify/internal/repository/postgres"
	"taskify/internal/service"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// repositories - набор хранилищ выбранного бэкенда
type repositories struct {
	kind   service.RepoType
	tasks  service.TaskRepository
	topics service.TopicRepository
	users  service.UserRepository
	close  func(context.Context) error
}

func newBackOff(ctx context.Context, maxElapsed time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed
	return backoff.WithContext(b, ctx)
}

// connectWithRetry повторяет только подключение при старте; операции хранилища не повторяются
func connectWithRetry(ctx context.Context, name string, maxElapsed time.Duration, connect func() error) error {
	attempt := 0
	operation := func() error {
		attempt++
		return connect()
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("App: хранилище недоступно, повтор",
			zap.String("repository", name),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, newBackOff(ctx, maxElapsed), notify); err != nil {
		return fmt.Errorf("подключение к %s: %w", name, err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch service.RepoType(cfg.Repository.Type) {
	case service.DBType:
		return openPostgres(ctx, cfg)
	case service.DocumentType:
		return openMongo(ctx, cfg)
	case service.InMemoryType:
		logger.Info("App: используется хранилище в памяти")
		return &repositories{
			kind:   service.InMemoryType,
			tasks:  inmemory.NewTaskStorage(),
			topics: inmemory.NewTopicStorage(),
			users:  inmemory.NewUserStorage(),
			close:  func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("неизвестный тип репозитория %q", cfg.Repository.Type)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*repositories, error) {
	var storage *postgres.Storage
	err := connectWithRetry(ctx, "postgres", cfg.Database.ConnectTimeout, func() error {
		var err error
		storage, err = postgres.New(ctx, cfg.Database.URL, postgres.PoolOptions{
			MaxConns:        cfg.Database.MaxConnections,
			MinConns:        cfg.Database.MinConnections,
			MaxConnIdleTime: cfg.Database.IdleTimeout,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrate {
		if err := migrations.Up(cfg.Database.URL); err != nil {
			storage.Close()
			return nil, err
		}
	}

	return &repositories{
		kind:   service.DBType,
		tasks:  postgres.NewTaskRepository(storage),
		topics: postgres.NewTopicRepository(storage),
		users:  postgres.NewUserRepository(storage),
		close: func(context.Context) error {
			storage.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*repositories, error) {
	var storage *mongodb.Storage
	err := connectWithRetry(ctx, "mongo", cfg.Database.ConnectTimeout, func() error {
		var err error
		storage, err = mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &repositories{
		kind:   service.DocumentType,
		tasks:  mongodb.NewTaskRepository(storage),
		topics: mongodb.NewTopicRepository(storage),
		users:  mongodb.NewUserRepository(storage),
		close:  storage.Close,
	}, nil
}
