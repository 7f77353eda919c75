package postgres

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/user"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	*Storage
}

func NewUserRepository(s *Storage) *UserRepository {
	return &UserRepository{Storage: s}
}

// Create возвращает ErrDuplicate, если email уже занят
func (r *UserRepository) Create(ctx context.Context, userToCreate *user.User) error {
	defer warnIfSlow(time.Now(), slowWrite, "create user")

	query := `INSERT INTO users (uuid, email, password_hash, created_at)
				VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		userToCreate.UUID,
		userToCreate.Email,
		userToCreate.PasswordHash,
		userToCreate.CreatedAt,
	)
	if err != nil {
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
	return r.getOne(ctx, `SELECT uuid, email, password_hash, created_at, updated_at FROM users WHERE uuid = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT uuid, email, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	defer warnIfSlow(time.Now(), slowRead, "get user")

	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[user.User])
	if err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return found, nil
}
