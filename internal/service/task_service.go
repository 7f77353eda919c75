package service

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	rep "taskify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RepoType string

const DBType RepoType = "postgres"
const DocumentType RepoType = "mongo"
const InMemoryType RepoType = "inmemory"

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo     TaskRepository
	RepoType RepoType
}

func NewTaskService(repo TaskRepository, repoType RepoType) TaskService {
	return TaskService{
		repo:     repo,
		RepoType: repoType,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) Repository() RepoType {
	return s.RepoType
}

func (s *TaskService) CreateTask(ctx context.Context, owner uuid.UUID, draft task.Draft) (*task.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, validationFrom(err)
	}

	newTask := task.New(owner, draft.Title, draft.Options()...)
	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", newTask.UUID.String()),
		zap.String("owner_id", owner.String()))
	return newTask, nil
}

func (s *TaskService) ListTasks(ctx context.Context, owner uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, validationFrom(err)
	}

	tasks, err := s.repo.ListByOwner(ctx, owner, filter)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, owner, id uuid.UUID) (*task.Task, error) {
	return s.getOwned(ctx, owner, id)
}

func (s *TaskService) UpdateTask(ctx context.Context, owner, id uuid.UUID, patch task.Patch) (*task.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, validationFrom(err)
	}

	taskToUpdate, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return taskToUpdate, nil
	}

	for _, opt := range patch.Options() {
		if opt != nil {
			opt(taskToUpdate)
		}
	}
	taskToUpdate.Touch()

	if err := s.repo.Update(ctx, taskToUpdate); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return taskToUpdate, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, owner, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, owner, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceTask, id.String())
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id.String()))
	return nil
}

// GetProgress считает общий прогресс и прогресс по категориям
func (s *TaskService) GetProgress(ctx context.Context, owner uuid.UUID) (task.Report, error) {
	tasks, err := s.repo.ListByOwner(ctx, owner, task.Filter{})
	if err != nil {
		return task.Report{}, fmt.Errorf("получение задач: %w", err)
	}
	return task.BuildReport(tasks), nil
}

func (s *TaskService) getOwned(ctx context.Context, owner, id uuid.UUID) (*task.Task, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if err := checkOwner(ResourceTask, id, found.Owner, owner); err != nil {
		return nil, err
	}
	return found, nil
}
