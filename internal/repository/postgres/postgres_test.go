package postgres_test

import (
	"context"
	"fmt"
	"taskify/internal/migrations"
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"taskify/internal/models/user"
	"taskify/internal/repository"
	"taskify/internal/repository/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	tasks      *postgres.TaskRepository
	topics     *postgres.TopicRepository
	users      *postgres.UserRepository
	connString string
	ctx        context.Context
}

// SetupSuite запускается один раз перед всеми тестами
func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	require.NoError(s.T(), migrations.Up(s.connString))

	s.storage, err = postgres.New(s.ctx, s.connString, postgres.PoolOptions{MaxConns: 4})
	require.NoError(s.T(), err)

	s.tasks = postgres.NewTaskRepository(s.storage)
	s.topics = postgres.NewTopicRepository(s.storage)
	s.users = postgres.NewUserRepository(s.storage)
}

// TearDownSuite очищает после всех тестов
func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицы перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, "TRUNCATE topics, tasks, users CASCADE")
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) newUser(email string) *user.User {
	u := user.New(email, "hash")
	require.NoError(s.T(), s.users.Create(s.ctx, u))
	return u
}

func (s *PostgresTestSuite) TestHealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

func (s *PostgresTestSuite) TestUsers() {
	ann := s.newUser("ann@example.com")

	err := s.users.Create(s.ctx, user.New("ann@example.com", "other"))
	assert.ErrorIs(s.T(), err, repository.ErrDuplicate)

	found, err := s.users.GetByEmail(s.ctx, "ann@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), ann.UUID, found.UUID)
	assert.Equal(s.T(), "hash", found.PasswordHash)

	_, err = s.users.GetByID(s.ctx, uuid.New())
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestTaskCRUD() {
	owner := s.newUser("ann@example.com")
	due := time.Now().Add(48 * time.Hour).Truncate(time.Microsecond)

	created := task.New(owner.UUID, "Write report",
		task.WithDescription("quarterly"),
		task.WithCategory(task.CategoryWork),
		task.WithDueDate(&due))
	require.NoError(s.T(), s.tasks.Create(s.ctx, created))

	got, err := s.tasks.GetByID(s.ctx, created.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Write report", got.Title)
	assert.Equal(s.T(), task.CategoryWork, got.Category)
	assert.Equal(s.T(), task.PriorityMedium, got.Priority)
	require.NotNil(s.T(), got.DueDate)
	assert.True(s.T(), due.Equal(*got.DueDate))
	assert.Nil(s.T(), got.ReminderDate)

	got.Status = task.StatusCompleted
	got.DueDate = nil
	got.Touch()
	require.NoError(s.T(), s.tasks.Update(s.ctx, got))

	updated, err := s.tasks.GetByID(s.ctx, created.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), task.StatusCompleted, updated.Status)
	assert.Nil(s.T(), updated.DueDate)
	assert.NotNil(s.T(), updated.UpdatedAt)

	require.NoError(s.T(), s.tasks.Delete(s.ctx, created.UUID))
	_, err = s.tasks.GetByID(s.ctx, created.UUID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
	assert.ErrorIs(s.T(), s.tasks.Delete(s.ctx, created.UUID), repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestTaskListFilters() {
	ann := s.newUser("ann@example.com")
	bob := s.newUser("bob@example.com")

	milk := task.New(ann.UUID, "Buy milk", task.WithDescription("100% fat"), task.WithCategory(task.CategoryPersonal))
	report := task.New(ann.UUID, "Write report", task.WithPriority(task.PriorityHigh))
	report.CreatedAt = milk.CreatedAt.Add(time.Second)
	foreign := task.New(bob.UUID, "Buy milk too")
	for _, t := range []*task.Task{milk, report, foreign} {
		require.NoError(s.T(), s.tasks.Create(s.ctx, t))
	}

	all, err := s.tasks.ListByOwner(s.ctx, ann.UUID, task.Filter{})
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
	assert.Equal(s.T(), report.UUID, all[0].UUID)

	search, err := s.tasks.ListByOwner(s.ctx, ann.UUID, task.Filter{Search: "MILK"})
	require.NoError(s.T(), err)
	require.Len(s.T(), search, 1)
	assert.Equal(s.T(), milk.UUID, search[0].UUID)

	percent, err := s.tasks.ListByOwner(s.ctx, ann.UUID, task.Filter{Search: "100%"})
	require.NoError(s.T(), err)
	assert.Len(s.T(), percent, 1)

	high, err := s.tasks.ListByOwner(s.ctx, ann.UUID, task.Filter{Priority: task.PriorityHigh})
	require.NoError(s.T(), err)
	require.Len(s.T(), high, 1)
	assert.Equal(s.T(), report.UUID, high[0].UUID)

	empty, err := s.tasks.ListByOwner(s.ctx, uuid.New(), task.Filter{})
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), empty)
}

func (s *PostgresTestSuite) TestNotifications() {
	ann := s.newUser("ann@example.com")
	bob := s.newUser("bob@example.com")
	now := time.Now()
	past := now.Add(-time.Hour)
	soon := now.Add(time.Hour)
	farAway := now.Add(72 * time.Hour)

	late := task.New(ann.UUID, "late", task.WithDueDate(&past))
	remind := task.New(ann.UUID, "remind", task.WithReminderDate(&soon), task.WithDueDate(&farAway))
	done := task.New(ann.UUID, "done", task.WithDueDate(&past), task.WithStatus(task.StatusCompleted))
	later := task.New(ann.UUID, "later", task.WithDueDate(&farAway))
	bobLate := task.New(bob.UUID, "bob", task.WithDueDate(&past))
	for _, t := range []*task.Task{late, remind, done, later, bobLate} {
		require.NoError(s.T(), s.tasks.Create(s.ctx, t))
	}

	candidates, err := s.tasks.GetNotifiable(s.ctx, ann.UUID, task.NewWindow(now, nil))
	require.NoError(s.T(), err)
	ids := []uuid.UUID{}
	for _, t := range candidates {
		ids = append(ids, t.UUID)
	}
	assert.ElementsMatch(s.T(), []uuid.UUID{late.UUID, remind.UUID}, ids)

	require.NoError(s.T(), s.tasks.MarkNotified(s.ctx, append(ids, bobLate.UUID)))
	require.NoError(s.T(), s.tasks.MarkNotified(s.ctx, nil))

	reset, err := s.tasks.ResetNotified(s.ctx, ann.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), reset)

	gotBob, err := s.tasks.GetByID(s.ctx, bobLate.UUID)
	require.NoError(s.T(), err)
	assert.True(s.T(), gotBob.Notified)
}

func (s *PostgresTestSuite) TestTopics() {
	ann := s.newUser("ann@example.com")

	first := topic.New(ann.UUID, "Go", "language")
	first.AddSubtopic("Slices")
	first.AddSubtopic("Maps")
	second := topic.New(ann.UUID, "SQL", "")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(s.T(), s.topics.Create(s.ctx, first))
	require.NoError(s.T(), s.topics.Create(s.ctx, second))

	got, err := s.topics.GetByID(s.ctx, first.UUID)
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Subtopics, 2)
	assert.Equal(s.T(), first.Subtopics[0].UUID, got.Subtopics[0].UUID)

	_, err = got.ToggleSubtopic(got.Subtopics[1].UUID)
	require.NoError(s.T(), err)
	got.Touch()
	require.NoError(s.T(), s.topics.Update(s.ctx, got))

	reloaded, err := s.topics.GetByID(s.ctx, first.UUID)
	require.NoError(s.T(), err)
	assert.True(s.T(), reloaded.Subtopics[1].Completed)
	assert.Equal(s.T(), 50, reloaded.Progress())

	list, err := s.topics.ListByOwner(s.ctx, ann.UUID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), first.UUID, list[0].UUID)
	assert.NotNil(s.T(), list[1].Subtopics)

	require.NoError(s.T(), s.topics.Delete(s.ctx, first.UUID))
	_, err = s.topics.GetByID(s.ctx, first.UUID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

// TestPostgresSuite запускает набор тестов
func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропуск интеграционных тестов в коротком режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}
