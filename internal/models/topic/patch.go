package topic

import (
	"strings"
	"taskify/internal/attachment"
	"taskify/internal/models"

	"github.com/google/uuid"
)

type SubtopicInput struct {
	ID            string
	Title         string
	Completed     bool
	AttachmentURL string
}

type Draft struct {
	Title         string
	Description   string
	AttachmentURL string
	Subtopics     []SubtopicInput
}

// Patch - частичное обновление темы; Subtopics заменяет список целиком
type Patch struct {
	Title         *string
	Description   *string
	AttachmentURL *string
	Subtopics     *[]SubtopicInput
}

// validateSubtopics проверяет подтемы; id внутри одной темы не повторяются
func validateSubtopics(inputs []SubtopicInput) error {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for _, s := range inputs {
		if strings.TrimSpace(s.Title) == "" {
			return models.NewFieldError("subtopics.title", "название подтемы не может быть пустым")
		}
		if err := attachment.ValidateURL(s.AttachmentURL); err != nil {
			return models.NewFieldError("subtopics.attachmentUrl", err.Error())
		}
		if s.ID == "" {
			continue
		}
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return models.NewFieldError("subtopics.id", "неверный id подтемы "+s.ID)
		}
		if _, dup := seen[id]; dup {
			return models.NewFieldError("subtopics.id", "повторяющийся id подтемы "+s.ID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return models.NewFieldError("title", "название не может быть пустым")
	}
	if err := attachment.ValidateURL(d.AttachmentURL); err != nil {
		return models.NewFieldError("attachmentUrl", err.Error())
	}
	return validateSubtopics(d.Subtopics)
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return models.NewFieldError("title", "название не может быть пустым")
	}
	if p.AttachmentURL != nil {
		if err := attachment.ValidateURL(*p.AttachmentURL); err != nil {
			return models.NewFieldError("attachmentUrl", err.Error())
		}
	}
	if p.Subtopics != nil {
		return validateSubtopics(*p.Subtopics)
	}
	return nil
}

// IsEmpty - в патче нет ни одного поля
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.AttachmentURL == nil && p.Subtopics == nil
}

// Apply сливает провалидированный патч в тему
func (p Patch) Apply(t *Topic) error {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.AttachmentURL != nil {
		t.AttachmentURL = *p.AttachmentURL
	}
	if p.Subtopics != nil {
		subtopics, err := ToSubtopics(*p.Subtopics)
		if err != nil {
			return err
		}
		t.ReplaceSubtopics(subtopics)
	}
	return nil
}

func (d Draft) Build(t *Topic) error {
	t.AttachmentURL = d.AttachmentURL
	subtopics, err := ToSubtopics(d.Subtopics)
	if err != nil {
		return err
	}
	t.ReplaceSubtopics(subtopics)
	return nil
}

func ToSubtopics(inputs []SubtopicInput) ([]Subtopic, error) {
	res := make([]Subtopic, 0, len(inputs))
	for _, in := range inputs {
		id := uuid.Nil
		if in.ID != "" {
			parsed, err := uuid.Parse(in.ID)
			if err != nil {
				return nil, models.NewFieldError("subtopics.id", "неверный id подтемы "+in.ID)
			}
			id = parsed
		}
		res = append(res, Subtopic{
			UUID:          id,
			Title:         in.Title,
			Completed:     in.Completed,
			AttachmentURL: in.AttachmentURL,
		})
	}
	return res, nil
}
