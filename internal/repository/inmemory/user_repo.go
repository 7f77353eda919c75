package inmemory

import (
	"context"
	"sync"
	"taskify/internal/models/user"
	repo "taskify/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
	mtx     *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[uuid.UUID]user.User),
		byEmail: make(map[string]uuid.UUID),
		mtx:     &sync.RWMutex{},
	}
}

func (s *UserStorage) Create(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byEmail[userToCreate.Email]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.storage[userToCreate.UUID]; ok {
		return repo.ErrDuplicate
	}

	s.storage[userToCreate.UUID] = *userToCreate
	s.byEmail[userToCreate.Email] = userToCreate.UUID
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &found, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	found := s.storage[id]
	return &found, nil
}
