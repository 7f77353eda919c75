package dto

import (
	"taskify/internal/models/task"
)

type CreateTaskRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       string       `json:"status"`
	Category     string       `json:"category"`
	Priority     string       `json:"priority"`
	DueDate      NullableTime `json:"dueDate"`
	ReminderDate NullableTime `json:"reminderDate"`
}

func (r CreateTaskRequest) Draft() task.Draft {
	return task.Draft{
		Title:        r.Title,
		Description:  r.Description,
		Status:       task.Status(r.Status),
		Category:     task.Category(r.Category),
		Priority:     task.Priority(r.Priority),
		DueDate:      r.DueDate.Ptr(),
		ReminderDate: r.ReminderDate.Ptr(),
	}
}

type UpdateTaskRequest struct {
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Status       *string      `json:"status,omitempty"`
	Category     *string      `json:"category,omitempty"`
	Priority     *string      `json:"priority,omitempty"`
	DueDate      NullableTime `json:"dueDate"`
	ReminderDate NullableTime `json:"reminderDate"`
}

func (r UpdateTaskRequest) Patch() task.Patch {
	p := task.Patch{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate.Optional(),
		ReminderDate: r.ReminderDate.Optional(),
	}
	if r.Status != nil {
		s := task.Status(*r.Status)
		p.Status = &s
	}
	if r.Category != nil {
		c := task.Category(*r.Category)
		p.Category = &c
	}
	if r.Priority != nil {
		pr := task.Priority(*r.Priority)
		p.Priority = &pr
	}
	return p
}

type DeletedResponse struct {
	ID string `json:"id"`
}

type MarkReadResponse struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}
