package inmemory

import (
	"context"
	"sync"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	repo "taskify/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

// хранилище отдаёт и принимает копии, чтобы вызывающий не менял данные в обход Update
func cloneTask(t *task.Task) *task.Task {
	c := *t
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	if t.ReminderDate != nil {
		v := *t.ReminderDate
		c.ReminderDate = &v
	}
	if t.UpdatedAt != nil {
		v := *t.UpdatedAt
		c.UpdatedAt = &v
	}
	return &c
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToCreate.UUID]; ok {
		return repo.ErrDuplicate
	}

	s.storage[taskToCreate.UUID] = cloneTask(taskToCreate)
	s.ids = append(s.ids, taskToCreate.UUID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.UUID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[taskToUpdate.UUID] = cloneTask(taskToUpdate)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneTask(taskToGet), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// задачи владельца от новых к старым
func (s *TaskStorage) ListByOwner(ctx context.Context, owner uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for i := len(s.ids) - 1; i >= 0; i-- {
		t := s.storage[s.ids[i]]
		if t.Owner != owner || !filter.Match(t) {
			continue
		}
		res = append(res, cloneTask(t))
	}
	return res, nil
}

func (s *TaskStorage) GetNotifiable(ctx context.Context, owner uuid.UUID, w task.Window) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.Owner != owner || !w.Matches(t) {
			continue
		}
		res = append(res, cloneTask(t))
	}
	return res, nil
}

func (s *TaskStorage) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, id := range ids {
		if t, ok := s.storage[id]; ok {
			t.Notified = true
		}
	}
	return nil
}

func (s *TaskStorage) ResetNotified(ctx context.Context, owner uuid.UUID) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var updated int64
	for _, t := range s.storage {
		if t.Owner == owner && t.Notified {
			t.Notified = false
			updated++
		}
	}
	return updated, nil
}
