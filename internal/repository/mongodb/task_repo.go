package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type TaskRepository struct {
	*Storage
	coll *mongo.Collection
}

func NewTaskRepository(s *Storage) *TaskRepository {
	return &TaskRepository{Storage: s, coll: s.db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, taskToCreate *task.Task) error {
	defer warnIfSlow(time.Now(), slowWrite, "create task")

	if _, err := r.coll.InsertOne(ctx, fromTask(taskToCreate)); err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", mapError(err))
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, taskToUpdate *task.Task) error {
	defer warnIfSlow(time.Now(), slowWrite, "update task")

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": taskToUpdate.UUID.String()}, fromTask(taskToUpdate))
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "get task")

	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return doc.toModel(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "delete task")

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		logger.Error("Repository: Удаление задачи", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "list tasks")

	query := bson.M{"owner": owner.String()}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.Priority != "" {
		query["priority"] = string(filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, query, opts)
}

// GetNotifiable отбирает кандидатов в корзины; точная раскладка делается в сервисе
func (r *TaskRepository) GetNotifiable(ctx context.Context, owner uuid.UUID, w task.Window) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), slowRead, "notifiable tasks")

	query := bson.M{
		"owner":  owner.String(),
		"status": bson.M{"$ne": string(task.StatusCompleted)},
		"$or": bson.A{
			bson.M{"due_date": bson.M{"$lte": w.EndOfToday}},
			bson.M{"reminder_date": bson.M{"$gte": w.Now, "$lte": w.ReminderEnd}},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, query, opts)
}

func (r *TaskRepository) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "mark notified")

	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": keys}},
		bson.M{"$set": bson.M{"notified": true}})
	if err != nil {
		logger.Error("Repository: Не удалось отметить уведомления", err, zap.Int("count", len(ids)))
		return fmt.Errorf("отметка уведомлений: %w", err)
	}
	return nil
}

func (r *TaskRepository) ResetNotified(ctx context.Context, owner uuid.UUID) (int64, error) {
	defer warnIfSlow(time.Now(), slowWrite, "reset notified")

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"owner": owner.String(), "notified": true},
		bson.M{"$set": bson.M{"notified": false}})
	if err != nil {
		logger.Error("Repository: Не удалось сбросить уведомления", err)
		return 0, fmt.Errorf("сброс уведомлений: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *TaskRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*task.Task, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Error("Repository: Ошибка итерации по документам", err)
		return nil, fmt.Errorf("итерация по документам: %w", err)
	}

	tasks := make([]*task.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toModel())
	}
	return tasks, nil
}
