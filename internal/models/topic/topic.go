package topic

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrSubtopicNotFound = errors.New("подтема не найдена")

type Subtopic struct {
	UUID          uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Completed     bool      `json:"completed"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
}

// Topic - агрегат; подтемы живут только внутри своей темы
type Topic struct {
	UUID          uuid.UUID  `json:"id" db:"uuid"`
	Owner         uuid.UUID  `json:"owner" db:"owner_uuid"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	AttachmentURL string     `json:"attachmentUrl,omitempty" db:"attachment_url"`
	Subtopics     []Subtopic `json:"subtopics" db:"subtopics"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

func New(owner uuid.UUID, title, description string) *Topic {
	return &Topic{
		UUID:        uuid.New(),
		Owner:       owner,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Subtopics:   []Subtopic{},
		CreatedAt:   time.Now().UTC(),
	}
}

func (t *Topic) Touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}

func NewSubtopic(title string) Subtopic {
	return Subtopic{
		UUID:  uuid.New(),
		Title: strings.TrimSpace(title),
	}
}

func (t *Topic) indexOf(id uuid.UUID) int {
	for i := range t.Subtopics {
		if t.Subtopics[i].UUID == id {
			return i
		}
	}
	return -1
}

func (t *Topic) Subtopic(id uuid.UUID) (*Subtopic, error) {
	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrSubtopicNotFound
	}
	return &t.Subtopics[i], nil
}

func (t *Topic) AddSubtopic(title string) *Subtopic {
	t.Subtopics = append(t.Subtopics, NewSubtopic(title))
	return &t.Subtopics[len(t.Subtopics)-1]
}

// ToggleSubtopic переключает отметку о выполнении
func (t *Topic) ToggleSubtopic(id uuid.UUID) (*Subtopic, error) {
	sub, err := t.Subtopic(id)
	if err != nil {
		return nil, err
	}
	sub.Completed = !sub.Completed
	return sub, nil
}

func (t *Topic) AttachToSubtopic(id uuid.UUID, url string) (*Subtopic, error) {
	sub, err := t.Subtopic(id)
	if err != nil {
		return nil, err
	}
	sub.AttachmentURL = url
	return sub, nil
}

// ReplaceSubtopics заменяет список целиком; подтемы без id или с уже занятым id получают новый
func (t *Topic) ReplaceSubtopics(subtopics []Subtopic) {
	res := make([]Subtopic, 0, len(subtopics))
	seen := make(map[uuid.UUID]struct{}, len(subtopics))
	for _, s := range subtopics {
		if _, dup := seen[s.UUID]; dup || s.UUID == uuid.Nil {
			s.UUID = uuid.New()
		}
		seen[s.UUID] = struct{}{}
		s.Title = strings.TrimSpace(s.Title)
		res = append(res, s)
	}
	t.Subtopics = res
}

func (t *Topic) CompletedCount() int {
	n := 0
	for _, s := range t.Subtopics {
		if s.Completed {
			n++
		}
	}
	return n
}

// Progress - процент выполненных подтем, 0 если подтем нет
func (t *Topic) Progress() int {
	return Percent(t.CompletedCount(), len(t.Subtopics))
}
