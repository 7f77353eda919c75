package inmemory

import (
	"context"
	"sync"
	"taskify/internal/models/topic"
	repo "taskify/internal/repository"

	"github.com/google/uuid"
)

type TopicStorage struct {
	storage map[uuid.UUID]*topic.Topic
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTopicStorage() *TopicStorage {
	return &TopicStorage{
		storage: make(map[uuid.UUID]*topic.Topic),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func cloneTopic(t *topic.Topic) *topic.Topic {
	c := *t
	c.Subtopics = make([]topic.Subtopic, len(t.Subtopics))
	copy(c.Subtopics, t.Subtopics)
	if t.UpdatedAt != nil {
		v := *t.UpdatedAt
		c.UpdatedAt = &v
	}
	return &c
}

func (s *TopicStorage) Create(ctx context.Context, topicToCreate *topic.Topic) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[topicToCreate.UUID]; ok {
		return repo.ErrDuplicate
	}

	s.storage[topicToCreate.UUID] = cloneTopic(topicToCreate)
	s.ids = append(s.ids, topicToCreate.UUID)
	return nil
}

// Update перезаписывает тему целиком
func (s *TopicStorage) Update(ctx context.Context, topicToUpdate *topic.Topic) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[topicToUpdate.UUID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[topicToUpdate.UUID] = cloneTopic(topicToUpdate)
	return nil
}

func (s *TopicStorage) GetByID(ctx context.Context, id uuid.UUID) (*topic.Topic, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneTopic(found), nil
}

func (s *TopicStorage) Delete(ctx context.Context, id uuid.UUID) error {
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

// темы владельца в порядке создания
func (s *TopicStorage) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*topic.Topic, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*topic.Topic{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.Owner == owner {
			res = append(res, cloneTopic(t))
		}
	}
	return res, nil
}
