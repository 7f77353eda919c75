package handlers_test

import (
	"context"
	"taskify/internal/handlers"
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"taskify/internal/models/user"
	"taskify/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskService) Repository() service.RepoType {
	return service.InMemoryType
}

func (m *MockTaskService) CreateTask(ctx context.Context, owner uuid.UUID, draft task.Draft) (*task.Task, error) {
	args := m.Called(ctx, owner, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, owner uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	args := m.Called(ctx, owner, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, owner, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, owner, id uuid.UUID, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, owner, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockTaskService) GetProgress(ctx context.Context, owner uuid.UUID) (task.Report, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(task.Report), args.Error(1)
}

var _ handlers.TaskService = (*MockTaskService)(nil)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, owner uuid.UUID) (task.Buckets, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(task.Buckets), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, owner uuid.UUID) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

var _ handlers.NotificationService = (*MockNotificationService)(nil)

type MockTopicService struct {
	mock.Mock
}

func (m *MockTopicService) topicResult(args mock.Arguments) (*topic.Topic, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topic.Topic), args.Error(1)
}

func (m *MockTopicService) CreateTopic(ctx context.Context, owner uuid.UUID, draft topic.Draft) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, draft))
}

func (m *MockTopicService) ListTopics(ctx context.Context, owner uuid.UUID, order string) ([]*topic.Topic, error) {
	args := m.Called(ctx, owner, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*topic.Topic), args.Error(1)
}

func (m *MockTopicService) GetTopic(ctx context.Context, owner, id uuid.UUID) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, id))
}

func (m *MockTopicService) UpdateTopic(ctx context.Context, owner, id uuid.UUID, patch topic.Patch) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, id, patch))
}

func (m *MockTopicService) DeleteTopic(ctx context.Context, owner, id uuid.UUID) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *MockTopicService) AddSubtopic(ctx context.Context, owner, id uuid.UUID, title string) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, id, title))
}

func (m *MockTopicService) ToggleSubtopic(ctx context.Context, owner, id, subtopicID uuid.UUID) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, id, subtopicID))
}

func (m *MockTopicService) AttachToSubtopic(ctx context.Context, owner, id, subtopicID uuid.UUID, url string) (*topic.Topic, error) {
	return m.topicResult(m.Called(ctx, owner, id, subtopicID, url))
}

var _ handlers.TopicService = (*MockTopicService)(nil)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

var _ handlers.UserService = (*MockUserService)(nil)
