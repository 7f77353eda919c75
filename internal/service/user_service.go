package service

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/user"
	rep "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthResult возвращается при регистрации и входе
type AuthResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) UserService {
	return UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = user.NormalizeEmail(email)
	if err := user.ValidateCredentials(email, password); err != nil {
		return nil, validationFrom(err)
	}

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, userExists(email)
	case !errors.Is(err, rep.ErrNotFound):
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	newUser := user.New(email, hash)
	if err := s.repo.Create(ctx, newUser); err != nil {
		// гонка двух регистраций ловится уникальным индексом
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, userExists(email)
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", newUser.UUID.String()))
	return s.issue(newUser)
}

// Login не раскрывает, что именно не совпало: email или пароль
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidCredentials()
	}

	found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	if err := s.hasher.Compare(found.PasswordHash, password); err != nil {
		logger.Warn("Service: Неудачная попытка входа", zap.String("user_id", found.UUID.String()))
		return nil, invalidCredentials()
	}

	return s.issue(found)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceUser, id.String())
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return found, nil
}

func (s *UserService) issue(u *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(u.UUID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("выпуск токена: %w", err)
	}
	return &AuthResult{
		User:      u,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func userExists(email string) *BusinessError {
	return NewBusinessError(CodeUserExists, "пользователь с таким email уже существует", ToDetail("email", email))
}

func invalidCredentials() *BusinessError {
	return NewBusinessError(CodeInvalidCredentials, "неверный email или пароль")
}
