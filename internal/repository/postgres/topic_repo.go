package postgres

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/topic"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const topicColumns = `uuid, owner_uuid, title, description, attachment_url, subtopics, created_at, updated_at`

// TopicRepository хранит подтемы в JSONB колонке темы, тема читается и пишется целиком
type TopicRepository struct {
	*Storage
}

func NewTopicRepository(s *Storage) *TopicRepository {
	return &TopicRepository{Storage: s}
}

func subtopicsOf(t *topic.Topic) []topic.Subtopic {
	if t.Subtopics == nil {
		return []topic.Subtopic{}
	}
	return t.Subtopics
}

func (r *TopicRepository) Create(ctx context.Context, topicToCreate *topic.Topic) error {
	defer warnIfSlow(time.Now(), slowWrite, "create topic")

	query := `INSERT INTO topics
				(uuid, owner_uuid, title, description, attachment_url, subtopics, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		topicToCreate.UUID,
		topicToCreate.Owner,
		topicToCreate.Title,
		topicToCreate.Description,
		topicToCreate.AttachmentURL,
		subtopicsOf(topicToCreate),
		topicToCreate.CreatedAt,
	)
	if err != nil {
		logger.Error("Repository: Не удалось добавить тему", err)
		return fmt.Errorf("добавление темы: %w", mapError(err))
	}
	return nil
}

func (r *TopicRepository) Update(ctx context.Context, topicToUpdate *topic.Topic) error {
	defer warnIfSlow(time.Now(), slowWrite, "update topic")

	query := `UPDATE topics
			SET title = $1,
				description = $2,
				attachment_url = $3,
				subtopics = $4,
				updated_at = $5
			WHERE uuid = $6`

	tag, err := r.pool.Exec(ctx, query,
		topicToUpdate.Title,
		topicToUpdate.Description,
		topicToUpdate.AttachmentURL,
		subtopicsOf(topicToUpdate),
		topicToUpdate.UpdatedAt,
		topicToUpdate.UUID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить тему", err)
		return fmt.Errorf("обновление темы: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*topic.Topic, error) {
	defer warnIfSlow(time.Now(), slowRead, "get topic")

	rows, err := r.pool.Query(ctx, `SELECT `+topicColumns+` FROM topics WHERE uuid = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось получить тему", err)
		return nil, fmt.Errorf("получение темы: %w", err)
	}

	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[topic.Topic])
	if err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить тему", err)
		return nil, fmt.Errorf("получение темы: %w", err)
	}
	return found, nil
}

func (r *TopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "delete topic")

	tag, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE uuid = $1`, id)
	if err != nil {
		logger.Error("Repository: Удаление темы", err)
		return fmt.Errorf("удаление темы: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TopicRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*topic.Topic, error) {
	defer warnIfSlow(time.Now(), slowRead, "list topics")

	rows, err := r.pool.Query(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE owner_uuid = $1 ORDER BY created_at, uuid`, owner)
	if err != nil {
		logger.Error("Repository: Не удалось получить темы", err)
		return nil, fmt.Errorf("получение тем: %w", err)
	}

	topics, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[topic.Topic])
	if err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	if topics == nil {
		topics = []*topic.Topic{}
	}
	return topics, nil
}
