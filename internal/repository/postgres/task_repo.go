package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const taskColumns = `uuid, owner_uuid, title, description, status, category, priority,
	due_date, reminder_date, notified, created_at, updated_at`

type TaskRepository struct {
	*Storage
}

func NewTaskRepository(s *Storage) *TaskRepository {
	return &TaskRepository{Storage: s}
}

func (r *TaskRepository) Create(ctx context.Context, taskToCreate *task.Task) error {
	defer warnIfSlow(time.Now(), slowWrite, "create task")

	query := `INSERT INTO tasks
				(uuid, owner_uuid, title, description, status, category, priority,
				 due_date, reminder_date, notified, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		taskToCreate.UUID,
		taskToCreate.Owner,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.Category,
		taskToCreate.Priority,
		taskToCreate.DueDate,
		taskToCreate.ReminderDate,
		taskToCreate.Notified,
		taskToCreate.CreatedAt,
	)
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", mapError(err))
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, taskToUpdate *task.Task) error {
	defer warnIfSlow(time.Now(), slowWrite, "update task")

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				category = $4,
				priority = $5,
				due_date = $6,
				reminder_date = $7,
				notified = $8,
				updated_at = $9
			WHERE uuid = $10`

	tag, err := r.pool.Exec(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.Category,
		taskToUpdate.Priority,
		taskToUpdate.DueDate,
		taskToUpdate.ReminderDate,
		taskToUpdate.Notified,
		taskToUpdate.UpdatedAt,
		taskToUpdate.UUID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "get task")

	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE uuid = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[task.Task])
	if err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return found, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "delete task")

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE uuid = $1`, id)
	if err != nil {
		logger.Error("Repository: Удаление задачи", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "list tasks")

	conditions := []string{"owner_uuid = $1"}
	args := []any{owner}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Priority != "" {
		add("priority = $%d", filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE ` + strings.Join(conditions, " AND ") + `
				ORDER BY created_at DESC`

	return r.collect(ctx, query, args...)
}

// GetNotifiable отбирает кандидатов в корзины; точная раскладка делается в сервисе
func (r *TaskRepository) GetNotifiable(ctx context.Context, owner uuid.UUID, w task.Window) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "notifiable tasks")

	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE owner_uuid = $1
				  AND status <> $2
				  AND (due_date <= $3 OR reminder_date BETWEEN $4 AND $5)
				ORDER BY created_at`

	return r.collect(ctx, query, owner, task.StatusCompleted, w.EndOfToday, w.Now, w.ReminderEnd)
}

func (r *TaskRepository) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "mark notified")

	if len(ids) == 0 {
		return nil
	}

	_, err := r.pool.Exec(ctx, `UPDATE tasks SET notified = TRUE WHERE uuid = ANY($1)`, ids)
	if err != nil {
		logger.Error("Repository: Не удалось отметить уведомления", err, zap.Int("count", len(ids)))
		return fmt.Errorf("отметка уведомлений: %w", err)
	}
	return nil
}

func (r *TaskRepository) ResetNotified(ctx context.Context, owner uuid.UUID) (int64, error) {
	defer warnIfSlow(time.Now(), slowWrite, "reset notified")

	tag, err := r.pool.Exec(ctx, `UPDATE tasks SET notified = FALSE WHERE owner_uuid = $1 AND notified`, owner)
	if err != nil {
		logger.Error("Repository: Не удалось сбросить уведомления", err)
		return 0, fmt.Errorf("сброс уведомлений: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) collect(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[task.Task])
	if err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	return tasks, nil
}
