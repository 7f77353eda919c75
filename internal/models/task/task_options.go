package task

import (
	"strings"
	"time"
)

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = strings.TrimSpace(title)
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = strings.TrimSpace(description)
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithCategory(category Category) TaskOption {
	if category == "" {
		return nil
	}
	return func(task *Task) {
		task.Category = category
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

// nil очищает дедлайн
func WithDueDate(dueDate *time.Time) TaskOption {
	return func(task *Task) {
		task.DueDate = utcCopy(dueDate)
	}
}

func WithReminderDate(reminderDate *time.Time) TaskOption {
	return func(task *Task) {
		task.ReminderDate = utcCopy(reminderDate)
	}
}

func utcCopy(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.UTC()
	return &v
}
