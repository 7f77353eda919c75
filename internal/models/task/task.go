package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	UUID         uuid.UUID  `json:"id" db:"uuid"`
	Owner        uuid.UUID  `json:"owner" db:"owner_uuid"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Status       Status     `json:"status" db:"status"`
	Category     Category   `json:"category" db:"category"`
	Priority     Priority   `json:"priority" db:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty" db:"due_date"`
	ReminderDate *time.Time `json:"reminderDate,omitempty" db:"reminder_date"`
	Notified     bool       `json:"notified" db:"notified"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

type Status string
type Category string
type Priority string

const StatusPending Status = "pending"
const StatusInProgress Status = "in-progress"
const StatusCompleted Status = "completed"

const CategoryGeneral Category = "general"
const CategoryWork Category = "work"
const CategoryPersonal Category = "personal"
const CategoryEducation Category = "education"
const CategoryHealth Category = "health"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"
const PriorityASAP Priority = "asap"

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}
var Categories = []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryEducation, CategoryHealth}
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityASAP}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// New собирает задачу со значениями по умолчанию и применяет опции поверх них
func New(owner uuid.UUID, title string, options ...TaskOption) *Task {
	t := &Task{
		UUID:      uuid.New(),
		Owner:     owner,
		Title:     title,
		Status:    StatusPending,
		Category:  CategoryGeneral,
		Priority:  PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *Task) IsOpen() bool {
	return t.Status != StatusCompleted
}

func (t *Task) Touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}
