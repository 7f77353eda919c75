package mongodb

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	repo "taskify/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	usersCollection  = "users"
	tasksCollection  = "tasks"
	topicsCollection = "topics"

	slowWrite = 50 * time.Millisecond
	slowRead  = 100 * time.Millisecond
)

// Storage держит клиент MongoDB и базу, общие для всех репозиториев
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, database string) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("taskify").
		SetMaxPoolSize(20))
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	s := &Storage{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Repository: Успешное создание подключения к MongoDB", zap.String("database", database))
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		tasksCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "notified", Value: 1}}},
		},
		topicsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("Repository: Не удалось создать индексы", err, zap.String("collection", collection))
			return fmt.Errorf("создание индексов %s: %w", collection, err)
		}
	}
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("закрытие соединения mongo: %w", err)
	}
	logger.Info("Repository: Закрытие всех соединений MongoDB")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func warnIfSlow(start time.Time, limit time.Duration, op string) {
	if elapsed := time.Since(start); elapsed > limit {
		logger.Warn("Repository: Медленный запрос", zap.String("op", op), zap.Duration("ms", elapsed))
	}
}

func mapError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repo.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repo.ErrDuplicate
	}
	return err
}
