package service_test

import (
	"context"
	"taskify/internal/models/topic"
	rep "taskify/internal/repository"
	"taskify/internal/service"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleTopic(owner uuid.UUID, completed ...bool) *topic.Topic {
	t := topic.New(owner, "Go", "learning")
	for i, c := range completed {
		sub := t.AddSubtopic("part " + string(rune('A'+i)))
		sub.Completed = c
	}
	return t
}

func TestTopicService_CreateTopic(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("subtopics get ids", func(t *testing.T) {
		mockRepo := new(MockTopicRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTopicService(mockRepo)
		res, err := svc.CreateTopic(ctx, owner, topic.Draft{
			Title:     "Databases",
			Subtopics: []topic.SubtopicInput{{Title: "Indexes"}, {Title: "Joins", Completed: true}},
		})

		require.NoError(t, err)
		assert.Equal(t, owner, res.Owner)
		require.Len(t, res.Subtopics, 2)
		assert.NotEqual(t, uuid.Nil, res.Subtopics[0].UUID)
		assert.True(t, res.Subtopics[1].Completed)
		assert.Equal(t, 50, res.Progress())
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - blank subtopic title", func(t *testing.T) {
		mockRepo := new(MockTopicRepository)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.CreateTopic(ctx, owner, topic.Draft{
			Title:     "Databases",
			Subtopics: []topic.SubtopicInput{{Title: " "}},
		})

		assertCode(t, err, service.CodeValidation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("error - repeated subtopic id", func(t *testing.T) {
		mockRepo := new(MockTopicRepository)
		id := uuid.NewString()

		svc := service.NewTopicService(mockRepo)
		_, err := svc.CreateTopic(ctx, owner, topic.Draft{
			Title:     "Databases",
			Subtopics: []topic.SubtopicInput{{ID: id, Title: "Indexes"}, {ID: id, Title: "Joins"}},
		})

		assertCode(t, err, service.CodeValidation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("error - attachment is not pdf", func(t *testing.T) {
		mockRepo := new(MockTopicRepository)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.CreateTopic(ctx, owner, topic.Draft{
			Title:         "Databases",
			AttachmentURL: "data:image/png;base64,AAAA",
		})

		assertCode(t, err, service.CodeValidation)
	})
}

func TestTopicService_ListTopics(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	low := sampleTopic(owner, false, false)
	high := sampleTopic(owner, true, true)
	mid := sampleTopic(owner, true, false)
	stored := []*topic.Topic{low, high, mid}

	tests := []struct {
		name     string
		order    string
		expected []*topic.Topic
	}{
		{name: "default keeps stored order", order: "", expected: []*topic.Topic{low, high, mid}},
		{name: "completion ascending", order: "completion-asc", expected: []*topic.Topic{low, mid, high}},
		{name: "completion descending", order: "completion-desc", expected: []*topic.Topic{high, mid, low}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTopicRepository)
			mockRepo.On("ListByOwner", mock.Anything, owner).Return(stored, nil)

			svc := service.NewTopicService(mockRepo)
			res, err := svc.ListTopics(ctx, owner, tt.order)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}

	t.Run("error - unknown sort", func(t *testing.T) {
		mockRepo := new(MockTopicRepository)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.ListTopics(ctx, owner, "alphabetical")

		assertCode(t, err, service.CodeInvalidSort)
		mockRepo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})
}

func TestTopicService_Subtopics(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("add subtopic appends", func(t *testing.T) {
		existing := sampleTopic(owner, true)
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(t *topic.Topic) bool {
			return len(t.Subtopics) == 2 && t.UpdatedAt != nil
		})).Return(nil)

		svc := service.NewTopicService(mockRepo)
		res, err := svc.AddSubtopic(ctx, owner, existing.UUID, "Channels")

		require.NoError(t, err)
		assert.Equal(t, "Channels", res.Subtopics[1].Title)
		assert.False(t, res.Subtopics[1].Completed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("toggle twice restores state", func(t *testing.T) {
		existing := sampleTopic(owner, false)
		subID := existing.Subtopics[0].UUID
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTopicService(mockRepo)
		res, err := svc.ToggleSubtopic(ctx, owner, existing.UUID, subID)
		require.NoError(t, err)
		assert.True(t, res.Subtopics[0].Completed)

		res, err = svc.ToggleSubtopic(ctx, owner, existing.UUID, subID)
		require.NoError(t, err)
		assert.False(t, res.Subtopics[0].Completed)
	})

	t.Run("error - unknown subtopic", func(t *testing.T) {
		existing := sampleTopic(owner, false)
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.ToggleSubtopic(ctx, owner, existing.UUID, uuid.New())

		assertCode(t, err, service.CodeNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("error - stranger cannot toggle", func(t *testing.T) {
		existing := sampleTopic(owner, false)
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.ToggleSubtopic(ctx, uuid.New(), existing.UUID, existing.Subtopics[0].UUID)

		assertCode(t, err, service.CodeNotAuthorized)
	})

	t.Run("attach stores data url", func(t *testing.T) {
		existing := sampleTopic(owner, false)
		subID := existing.Subtopics[0].UUID
		url := "data:application/pdf;base64,JVBERi0xLjQ="
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTopicService(mockRepo)
		res, err := svc.AttachToSubtopic(ctx, owner, existing.UUID, subID, url)

		require.NoError(t, err)
		assert.Equal(t, url, res.Subtopics[0].AttachmentURL)
	})

	t.Run("error - missing topic", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(MockTopicRepository)
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, rep.ErrNotFound)

		svc := service.NewTopicService(mockRepo)
		_, err := svc.AddSubtopic(ctx, owner, id, "x")

		assertCode(t, err, service.CodeNotFound)
	})
}

func TestTopicService_UpdateTopic(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	existing := sampleTopic(owner, true, false)
	keptID := existing.Subtopics[0].UUID
	mockRepo := new(MockTopicRepository)
	mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewTopicService(mockRepo)
	subtopics := []topic.SubtopicInput{
		{ID: keptID.String(), Title: "Renamed", Completed: true},
		{Title: "Fresh"},
	}
	res, err := svc.UpdateTopic(ctx, owner, existing.UUID, topic.Patch{Subtopics: &subtopics})

	require.NoError(t, err)
	assert.Equal(t, "Go", res.Title)
	require.Len(t, res.Subtopics, 2)
	assert.Equal(t, keptID, res.Subtopics[0].UUID)
	assert.Equal(t, "Renamed", res.Subtopics[0].Title)
	assert.NotEqual(t, uuid.Nil, res.Subtopics[1].UUID)
}

func TestTopicService_DeleteTopic(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	existing := sampleTopic(owner)

	mockRepo := new(MockTopicRepository)
	mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)
	mockRepo.On("Delete", mock.Anything, existing.UUID).Return(nil)

	svc := service.NewTopicService(mockRepo)
	err := svc.DeleteTopic(ctx, owner, existing.UUID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestTopicService_UpdateTopicEmptyPatch(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	existing := sampleTopic(owner, true)

	mockRepo := new(MockTopicRepository)
	mockRepo.On("GetByID", mock.Anything, existing.UUID).Return(existing, nil)

	svc := service.NewTopicService(mockRepo)
	res, err := svc.UpdateTopic(ctx, owner, existing.UUID, topic.Patch{})

	require.NoError(t, err)
	assert.Equal(t, existing.UUID, res.UUID)
	assert.Nil(t, res.UpdatedAt)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	_, err = svc.UpdateTopic(ctx, uuid.New(), existing.UUID, topic.Patch{})
	assertCode(t, err, service.CodeNotAuthorized)
}
