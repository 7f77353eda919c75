package dto

import (
	"taskify/internal/models/topic"
	"time"

	"github.com/google/uuid"
)

type SubtopicRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	AttachmentURL string `json:"attachmentUrl"`
}

func toInputs(reqs []SubtopicRequest) []topic.SubtopicInput {
	inputs := make([]topic.SubtopicInput, 0, len(reqs))
	for _, s := range reqs {
		inputs = append(inputs, topic.SubtopicInput{
			ID:            s.ID,
			Title:         s.Title,
			Completed:     s.Completed,
			AttachmentURL: s.AttachmentURL,
		})
	}
	return inputs
}

type CreateTopicRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	AttachmentURL string            `json:"attachmentUrl"`
	Subtopics     []SubtopicRequest `json:"subtopics"`
}

func (r CreateTopicRequest) Draft() topic.Draft {
	return topic.Draft{
		Title:         r.Title,
		Description:   r.Description,
		AttachmentURL: r.AttachmentURL,
		Subtopics:     toInputs(r.Subtopics),
	}
}

type UpdateTopicRequest struct {
	Title         *string            `json:"title,omitempty"`
	Description   *string            `json:"description,omitempty"`
	AttachmentURL *string            `json:"attachmentUrl,omitempty"`
	Subtopics     *[]SubtopicRequest `json:"subtopics,omitempty"`
}

func (r UpdateTopicRequest) Patch() topic.Patch {
	p := topic.Patch{
		Title:         r.Title,
		Description:   r.Description,
		AttachmentURL: r.AttachmentURL,
	}
	if r.Subtopics != nil {
		inputs := toInputs(*r.Subtopics)
		p.Subtopics = &inputs
	}
	return p
}

type AddSubtopicRequest struct {
	Title string `json:"title"`
}

type TopicResponse struct {
	UUID          uuid.UUID        `json:"id"`
	Owner         uuid.UUID        `json:"owner"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	AttachmentURL string           `json:"attachmentUrl,omitempty"`
	Subtopics     []topic.Subtopic `json:"subtopics"`
	Progress      int              `json:"progress"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt,omitempty"`
}

func FromTopic(t *topic.Topic) TopicResponse {
	subtopics := t.Subtopics
	if subtopics == nil {
		subtopics = []topic.Subtopic{}
	}
	return TopicResponse{
		UUID:          t.UUID,
		Owner:         t.Owner,
		Title:         t.Title,
		Description:   t.Description,
		AttachmentURL: t.AttachmentURL,
		Subtopics:     subtopics,
		Progress:      t.Progress(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func FromTopicList(topics []*topic.Topic) []TopicResponse {
	result := make([]TopicResponse, len(topics))
	for i, t := range topics {
		result[i] = FromTopic(t)
	}
	return result
}
