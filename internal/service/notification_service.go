package service

import (
	"context"
	"fmt"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService struct {
	repo     TaskRepository
	location *time.Location
	now      func() time.Time
}

// location задаёт границы "сегодня"; nil - локальный пояс сервера
func NewNotificationService(repo TaskRepository, location *time.Location) NotificationService {
	if location == nil {
		location = time.Local
	}
	return NotificationService{
		repo:     repo,
		location: location,
		now:      time.Now,
	}
}

// WithClock подменяет источник текущего времени
func (s NotificationService) WithClock(now func() time.Time) NotificationService {
	s.now = now
	return s
}

// GetNotifications раскладывает открытые задачи по корзинам и одной пачкой помечает их уведомлёнными
func (s *NotificationService) GetNotifications(ctx context.Context, owner uuid.UUID) (task.Buckets, error) {
	window := task.NewWindow(s.now(), s.location)

	tasks, err := s.repo.GetNotifiable(ctx, owner, window)
	if err != nil {
		return task.Buckets{}, fmt.Errorf("получение уведомлений: %w", err)
	}

	buckets := task.Classify(tasks, window)
	matched := buckets.Matched()
	if len(matched) == 0 {
		return buckets, nil
	}

	ids := make([]uuid.UUID, 0, len(matched))
	for _, t := range matched {
		ids = append(ids, t.UUID)
	}
	if err := s.repo.MarkNotified(ctx, ids); err != nil {
		return task.Buckets{}, fmt.Errorf("отметка уведомлений: %w", err)
	}
	for _, t := range matched {
		t.Notified = true
	}

	logger.Info("Service: Уведомления сформированы",
		zap.String("owner_id", owner.String()),
		zap.Int("reminders", len(buckets.Reminders)),
		zap.Int("due_today", len(buckets.DueToday)),
		zap.Int("overdue", len(buckets.Overdue)))
	return buckets, nil
}

// MarkAllRead сбрасывает флаг только у задач вызывающего
func (s *NotificationService) MarkAllRead(ctx context.Context, owner uuid.UUID) (int64, error) {
	updated, err := s.repo.ResetNotified(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("сброс уведомлений: %w", err)
	}
	return updated, nil
}
