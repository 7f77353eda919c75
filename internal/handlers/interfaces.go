package handlers

import (
	"context"
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"taskify/internal/models/user"
	"taskify/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	HealthCheck(context.Context) error
	Repository() service.RepoType
	CreateTask(context.Context, uuid.UUID, task.Draft) (*task.Task, error)
	ListTasks(context.Context, uuid.UUID, task.Filter) ([]*task.Task, error)
	GetTaskByID(context.Context, uuid.UUID, uuid.UUID) (*task.Task, error)
	UpdateTask(context.Context, uuid.UUID, uuid.UUID, task.Patch) (*task.Task, error)
	DeleteTask(context.Context, uuid.UUID, uuid.UUID) error
	GetProgress(context.Context, uuid.UUID) (task.Report, error)
}

type NotificationService interface {
	GetNotifications(context.Context, uuid.UUID) (task.Buckets, error)
	MarkAllRead(context.Context, uuid.UUID) (int64, error)
}

type TopicService interface {
	CreateTopic(context.Context, uuid.UUID, topic.Draft) (*topic.Topic, error)
	ListTopics(context.Context, uuid.UUID, string) ([]*topic.Topic, error)
	GetTopic(context.Context, uuid.UUID, uuid.UUID) (*topic.Topic, error)
	UpdateTopic(context.Context, uuid.UUID, uuid.UUID, topic.Patch) (*topic.Topic, error)
	DeleteTopic(context.Context, uuid.UUID, uuid.UUID) error
	AddSubtopic(context.Context, uuid.UUID, uuid.UUID, string) (*topic.Topic, error)
	ToggleSubtopic(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*topic.Topic, error)
	AttachToSubtopic(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, string) (*topic.Topic, error)
}

type UserService interface {
	Register(context.Context, string, string) (*service.AuthResult, error)
	Login(context.Context, string, string) (*service.AuthResult, error)
	GetUser(context.Context, uuid.UUID) (*user.User, error)
}
