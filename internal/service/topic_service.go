package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskify/internal/attachment"
	"taskify/internal/logger"
	"taskify/internal/models/topic"
	rep "taskify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopicService работает с темой как с агрегатом: одно чтение, команда, одно сохранение.
// Параллельные команды над одной темой не согласуются, побеждает последняя запись.
type TopicService struct {
	repo TopicRepository
}

func NewTopicService(repo TopicRepository) TopicService {
	return TopicService{repo: repo}
}

func (s *TopicService) CreateTopic(ctx context.Context, owner uuid.UUID, draft topic.Draft) (*topic.Topic, error) {
	if err := draft.Validate(); err != nil {
		return nil, validationFrom(err)
	}

	newTopic := topic.New(owner, draft.Title, draft.Description)
	if err := draft.Build(newTopic); err != nil {
		return nil, validationFrom(err)
	}

	if err := s.repo.Create(ctx, newTopic); err != nil {
		return nil, fmt.Errorf("создание темы: %w", err)
	}

	logger.Info("Service: Тема создана",
		zap.String("topic_id", newTopic.UUID.String()),
		zap.Int("subtopics", len(newTopic.Subtopics)))
	return newTopic, nil
}

func (s *TopicService) ListTopics(ctx context.Context, owner uuid.UUID, order string) ([]*topic.Topic, error) {
	sortOrder, err := topic.ParseSortOrder(order)
	if err != nil {
		return nil, NewBusinessError(CodeInvalidSort, err.Error(), ToDetail("sort", order))
	}

	topics, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("получение тем: %w", err)
	}
	return topic.Sort(topics, sortOrder), nil
}

func (s *TopicService) GetTopic(ctx context.Context, owner, id uuid.UUID) (*topic.Topic, error) {
	return s.getOwned(ctx, owner, id)
}

func (s *TopicService) UpdateTopic(ctx context.Context, owner, id uuid.UUID, patch topic.Patch) (*topic.Topic, error) {
	if err := patch.Validate(); err != nil {
		return nil, validationFrom(err)
	}
	if patch.IsEmpty() {
		return s.getOwned(ctx, owner, id)
	}

	return s.mutate(ctx, owner, id, func(t *topic.Topic) error {
		return validationFrom(patch.Apply(t))
	})
}

func (s *TopicService) DeleteTopic(ctx context.Context, owner, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, owner, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceTopic, id.String())
		}
		return fmt.Errorf("удаление темы: %w", err)
	}

	logger.Info("Service: Тема удалена", zap.String("topic_id", id.String()))
	return nil
}

func (s *TopicService) AddSubtopic(ctx context.Context, owner, id uuid.UUID, title string) (*topic.Topic, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("title", "название подтемы не может быть пустым")
	}

	return s.mutate(ctx, owner, id, func(t *topic.Topic) error {
		t.AddSubtopic(title)
		return nil
	})
}

func (s *TopicService) ToggleSubtopic(ctx context.Context, owner, id, subtopicID uuid.UUID) (*topic.Topic, error) {
	return s.mutate(ctx, owner, id, func(t *topic.Topic) error {
		_, err := t.ToggleSubtopic(subtopicID)
		return subtopicError(err, subtopicID)
	})
}

// AttachToSubtopic сохраняет уже закодированный data URL или внешнюю ссылку
func (s *TopicService) AttachToSubtopic(ctx context.Context, owner, id, subtopicID uuid.UUID, url string) (*topic.Topic, error) {
	if url == "" {
		return nil, NewValidationError("file", "файл не загружен")
	}
	if err := attachment.ValidateURL(url); err != nil {
		return nil, NewValidationError("file", err.Error())
	}

	return s.mutate(ctx, owner, id, func(t *topic.Topic) error {
		_, err := t.AttachToSubtopic(subtopicID, url)
		return subtopicError(err, subtopicID)
	})
}

func (s *TopicService) mutate(ctx context.Context, owner, id uuid.UUID, command func(*topic.Topic) error) (*topic.Topic, error) {
	found, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if err := command(found); err != nil {
		return nil, err
	}
	found.Touch()

	if err := s.repo.Update(ctx, found); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceTopic, id.String())
		}
		return nil, fmt.Errorf("сохранение темы: %w", err)
	}
	return found, nil
}

func (s *TopicService) getOwned(ctx context.Context, owner, id uuid.UUID) (*topic.Topic, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Тема не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceTopic, id.String())
		}
		return nil, fmt.Errorf("получение темы: %w", err)
	}

	if err := checkOwner(ResourceTopic, id, found.Owner, owner); err != nil {
		return nil, err
	}
	return found, nil
}

func subtopicError(err error, subtopicID uuid.UUID) error {
	if errors.Is(err, topic.ErrSubtopicNotFound) {
		return NewNotFound(ResourceSubtopic, subtopicID.String())
	}
	return err
}
