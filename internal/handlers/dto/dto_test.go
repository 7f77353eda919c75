package dto_test

import (
	"taskify/internal/handlers/dto"
	"taskify/internal/models/task"
	"taskify/internal/models/topic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskRequest_DateStates(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue bool
	}{
		{name: "absent keeps date", body: `{"title":"x"}`, wantSet: false},
		{name: "null clears date", body: `{"dueDate":null}`, wantSet: true, wantValue: false},
		{name: "empty string clears date", body: `{"dueDate":""}`, wantSet: true, wantValue: false},
		{name: "value sets date", body: `{"dueDate":"2025-03-01T10:00:00Z"}`, wantSet: true, wantValue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.UpdateTaskRequest
			require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(tt.body), &req))

			opt := req.Patch().DueDate
			assert.Equal(t, tt.wantSet, opt.Set)
			assert.Equal(t, tt.wantValue, opt.Value != nil)
			assert.False(t, req.Patch().ReminderDate.Set)
		})
	}
}

func TestUpdateTaskRequest_Enums(t *testing.T) {
	var req dto.UpdateTaskRequest
	require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(`{"status":"completed","priority":"asap"}`), &req))

	p := req.Patch()
	require.NotNil(t, p.Status)
	assert.Equal(t, task.StatusCompleted, *p.Status)
	require.NotNil(t, p.Priority)
	assert.Equal(t, task.PriorityASAP, *p.Priority)
	assert.Nil(t, p.Category)
	assert.Nil(t, p.Title)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-01T10:00:00+03:00", want: time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)},
		{in: "2025-03-01T10:00:00.500Z", want: time.Date(2025, 3, 1, 10, 0, 0, 500_000_000, time.UTC)},
		{in: "2025-03-01T10:00", want: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-03-01", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dto.ParseTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestCreateTaskRequest_Draft(t *testing.T) {
	var req dto.CreateTaskRequest
	body := `{"title":"Report","category":"work","dueDate":"2025-03-01T10:00:00Z","reminderDate":null}`
	require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(body), &req))

	d := req.Draft()
	assert.Equal(t, "Report", d.Title)
	assert.Equal(t, task.CategoryWork, d.Category)
	require.NotNil(t, d.DueDate)
	assert.Nil(t, d.ReminderDate)
}

func TestFromTopic(t *testing.T) {
	tp := topic.New(uuid.New(), "Go", "")
	tp.Subtopics = nil

	res := dto.FromTopic(tp)
	assert.NotNil(t, res.Subtopics)
	assert.Equal(t, 0, res.Progress)

	data, err := sonic.ConfigStd.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subtopics":[]`)
	assert.Contains(t, string(data), `"progress":0`)
}

func TestUpdateTopicRequest_Subtopics(t *testing.T) {
	var absent dto.UpdateTopicRequest
	require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(`{"title":"x"}`), &absent))
	assert.Nil(t, absent.Patch().Subtopics)

	var replaced dto.UpdateTopicRequest
	require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(`{"subtopics":[{"title":"a","completed":true}]}`), &replaced))
	require.NotNil(t, replaced.Patch().Subtopics)
	assert.True(t, (*replaced.Patch().Subtopics)[0].Completed)
}
