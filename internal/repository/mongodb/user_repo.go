package mongodb

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/user"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	*Storage
	coll *mongo.Collection
}

func NewUserRepository(s *Storage) *UserRepository {
	return &UserRepository{Storage: s, coll: s.db.Collection(usersCollection)}
}

// Create опирается на уникальный индекс по email
func (r *UserRepository) Create(ctx context.Context, userToCreate *user.User) error {
	defer warnIfSlow(time.Now(), slowWrite, "create user")

	if _, err := r.coll.InsertOne(ctx, fromUser(userToCreate)); err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrDuplicate) {
			return err
		}
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, filter bson.M) (*user.User, error) {
	defer warnIfSlow(time.Now(), slowRead, "get user")

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return doc.toModel(), nil
}
