package mongodb

import (
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"taskify/internal/models/user"
	"time"

	"github.com/google/uuid"
)

// документы хранят идентификаторы строками, чтобы _id читался в mongosh

type userDocument struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty"`
}

type taskDocument struct {
	ID           string     `bson:"_id"`
	Owner        string     `bson:"owner"`
	Title        string     `bson:"title"`
	Description  string     `bson:"description"`
	Status       string     `bson:"status"`
	Category     string     `bson:"category"`
	Priority     string     `bson:"priority"`
	DueDate      *time.Time `bson:"due_date,omitempty"`
	ReminderDate *time.Time `bson:"reminder_date,omitempty"`
	Notified     bool       `bson:"notified"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty"`
}

type subtopicDocument struct {
	ID            string `bson:"id"`
	Title         string `bson:"title"`
	Completed     bool   `bson:"completed"`
	AttachmentURL string `bson:"attachment_url,omitempty"`
}

type topicDocument struct {
	ID            string             `bson:"_id"`
	Owner         string             `bson:"owner"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	AttachmentURL string             `bson:"attachment_url,omitempty"`
	Subtopics     []subtopicDocument `bson:"subtopics"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     *time.Time         `bson:"updated_at,omitempty"`
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func fromUser(u *user.User) userDocument {
	return userDocument{
		ID:           u.UUID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) toModel() *user.User {
	return &user.User{
		UUID:         parseID(d.ID),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromTask(t *task.Task) taskDocument {
	return taskDocument{
		ID:           t.UUID.String(),
		Owner:        t.Owner.String(),
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Category:     string(t.Category),
		Priority:     string(t.Priority),
		DueDate:      t.DueDate,
		ReminderDate: t.ReminderDate,
		Notified:     t.Notified,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d taskDocument) toModel() *task.Task {
	return &task.Task{
		UUID:         parseID(d.ID),
		Owner:        parseID(d.Owner),
		Title:        d.Title,
		Description:  d.Description,
		Status:       task.Status(d.Status),
		Category:     task.Category(d.Category),
		Priority:     task.Priority(d.Priority),
		DueDate:      d.DueDate,
		ReminderDate: d.ReminderDate,
		Notified:     d.Notified,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromTopic(t *topic.Topic) topicDocument {
	subtopics := make([]subtopicDocument, 0, len(t.Subtopics))
	for _, s := range t.Subtopics {
		subtopics = append(subtopics, subtopicDocument{
			ID:            s.UUID.String(),
			Title:         s.Title,
			Completed:     s.Completed,
			AttachmentURL: s.AttachmentURL,
		})
	}
	return topicDocument{
		ID:            t.UUID.String(),
		Owner:         t.Owner.String(),
		Title:         t.Title,
		Description:   t.Description,
		AttachmentURL: t.AttachmentURL,
		Subtopics:     subtopics,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (d topicDocument) toModel() *topic.Topic {
	subtopics := make([]topic.Subtopic, 0, len(d.Subtopics))
	for _, s := range d.Subtopics {
		subtopics = append(subtopics, topic.Subtopic{
			UUID:          parseID(s.ID),
			Title:         s.Title,
			Completed:     s.Completed,
			AttachmentURL: s.AttachmentURL,
		})
	}
	return &topic.Topic{
		UUID:          parseID(d.ID),
		Owner:         parseID(d.Owner),
		Title:         d.Title,
		Description:   d.Description,
		AttachmentURL: d.AttachmentURL,
		Subtopics:     subtopics,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
