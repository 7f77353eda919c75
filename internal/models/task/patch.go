package task

import (
	"strings"
	"taskify/internal/models"
	"time"
)

// OptionalTime различает отсутствующее поле и явный null
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func SetTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

func ClearTime() OptionalTime {
	return OptionalTime{Set: true}
}

// Patch перечисляет поля частичного обновления, каждое независимо опционально
type Patch struct {
	Title        *string
	Description  *string
	Status       *Status
	Category     *Category
	Priority     *Priority
	DueDate      OptionalTime
	ReminderDate OptionalTime
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Category == nil &&
		p.Priority == nil && !p.DueDate.Set && !p.ReminderDate.Set
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return models.NewFieldError("title", "название не может быть пустым")
	}
	if p.Status != nil && !p.Status.Valid() {
		return models.NewFieldError("status", "неизвестный статус "+string(*p.Status))
	}
	if p.Category != nil && !p.Category.Valid() {
		return models.NewFieldError("category", "неизвестная категория "+string(*p.Category))
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return models.NewFieldError("priority", "неизвестный приоритет "+string(*p.Priority))
	}
	return nil
}

// Options переводит патч в опции обновления; применяются только присутствующие поля
func (p Patch) Options() []TaskOption {
	options := []TaskOption{}
	if p.Title != nil {
		options = append(options, WithTitle(*p.Title))
	}
	if p.Description != nil {
		options = append(options, WithDescription(*p.Description))
	}
	if p.Status != nil {
		options = append(options, WithStatus(*p.Status))
	}
	if p.Category != nil {
		options = append(options, WithCategory(*p.Category))
	}
	if p.Priority != nil {
		options = append(options, WithPriority(*p.Priority))
	}
	if p.DueDate.Set {
		options = append(options, WithDueDate(p.DueDate.Value))
	}
	if p.ReminderDate.Set {
		options = append(options, WithReminderDate(p.ReminderDate.Value))
	}
	return options
}

// Draft - данные для создания новой задачи
type Draft struct {
	Title        string
	Description  string
	Status       Status
	Category     Category
	Priority     Priority
	DueDate      *time.Time
	ReminderDate *time.Time
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return models.NewFieldError("title", "название не может быть пустым")
	}
	if d.Status != "" && !d.Status.Valid() {
		return models.NewFieldError("status", "неизвестный статус "+string(d.Status))
	}
	if d.Category != "" && !d.Category.Valid() {
		return models.NewFieldError("category", "неизвестная категория "+string(d.Category))
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return models.NewFieldError("priority", "неизвестный приоритет "+string(d.Priority))
	}
	return nil
}

func (d Draft) Options() []TaskOption {
	return []TaskOption{
		WithTitle(d.Title),
		WithDescription(d.Description),
		WithStatus(d.Status),
		WithCategory(d.Category),
		WithPriority(d.Priority),
		WithDueDate(d.DueDate),
		WithReminderDate(d.ReminderDate),
	}
}

// Filter - фильтры списка задач
type Filter struct {
	Status   Status
	Category Category
	Priority Priority
	Search   string
}

func (f Filter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return models.NewFieldError("status", "неизвестный статус "+string(f.Status))
	}
	if f.Category != "" && !f.Category.Valid() {
		return models.NewFieldError("category", "неизвестная категория "+string(f.Category))
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return models.NewFieldError("priority", "неизвестный приоритет "+string(f.Priority))
	}
	return nil
}

func (f Filter) Match(t *Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		return strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.Description), search)
	}
	return true
}
