package mongodb

import (
	"context"
	"errors"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/topic"
	repo "taskify/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TopicRepository хранит тему одним документом вместе с подтемами
type TopicRepository struct {
	*Storage
	coll *mongo.Collection
}

func NewTopicRepository(s *Storage) *TopicRepository {
	return &TopicRepository{Storage: s, coll: s.db.Collection(topicsCollection)}
}

func (r *TopicRepository) Create(ctx context.Context, topicToCreate *topic.Topic) error {
	defer warnIfSlow(time.Now(), slowWrite, "create topic")

	if _, err := r.coll.InsertOne(ctx, fromTopic(topicToCreate)); err != nil {
		logger.Error("Repository: Не удалось добавить тему", err)
		return fmt.Errorf("добавление темы: %w", mapError(err))
	}
	return nil
}

func (r *TopicRepository) Update(ctx context.Context, topicToUpdate *topic.Topic) error {
	defer warnIfSlow(time.Now(), slowWrite, "update topic")

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": topicToUpdate.UUID.String()}, fromTopic(topicToUpdate))
	if err != nil {
		logger.Error("Repository: Не удалось обновить тему", err)
		return fmt.Errorf("обновление темы: %w", err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*topic.Topic, error) {
	defer warnIfSlow(time.Now(), slowRead, "get topic")

	var doc topicDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		err = mapError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		logger.Error("Repository: Не удалось получить тему", err)
		return nil, fmt.Errorf("получение темы: %w", err)
	}
	return doc.toModel(), nil
}

func (r *TopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer warnIfSlow(time.Now(), slowWrite, "delete topic")

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		logger.Error("Repository: Удаление темы", err)
		return fmt.Errorf("удаление темы: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TopicRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*topic.Topic, error) {
	defer warnIfSlow(time.Now(), slowRead, "list topics")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner": owner.String()}, opts)
	if err != nil {
		logger.Error("Repository: Не удалось получить темы", err)
		return nil, fmt.Errorf("получение тем: %w", err)
	}

	var docs []topicDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Error("Repository: Ошибка итерации по документам", err)
		return nil, fmt.Errorf("итерация по документам: %w", err)
	}

	topics := make([]*topic.Topic, 0, len(docs))
	for _, d := range docs {
		topics = append(topics, d.toModel())
	}
	return topics, nil
}
