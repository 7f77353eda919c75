package service

import (
	"context"
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"taskify/internal/models/user"
	"time"

	"github.com/google/uuid"
)

type Resource string

const ResourceTask Resource = "task"
const ResourceTopic Resource = "topic"
const ResourceSubtopic Resource = "subtopic"
const ResourceUser Resource = "user"

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	Delete(context.Context, uuid.UUID) error
	ListByOwner(context.Context, uuid.UUID, task.Filter) ([]*task.Task, error)
	GetNotifiable(context.Context, uuid.UUID, task.Window) ([]*task.Task, error)
	MarkNotified(context.Context, []uuid.UUID) error
	ResetNotified(context.Context, uuid.UUID) (int64, error)
}

type TopicRepository interface {
	Create(context.Context, *topic.Topic) error
	Update(context.Context, *topic.Topic) error
	GetByID(context.Context, uuid.UUID) (*topic.Topic, error)
	Delete(context.Context, uuid.UUID) error
	ListByOwner(context.Context, uuid.UUID) ([]*topic.Topic, error)
}

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByID(context.Context, uuid.UUID) (*user.User, error)
	GetByEmail(context.Context, string) (*user.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, time.Time, error)
}
