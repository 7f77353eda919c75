package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t time.Time) *time.Time {
	return &t
}

func TestNewWindow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC) // 01:30 11 марта по UTC+3

	w := NewWindow(now, loc)

	assert.True(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc).Equal(w.StartOfToday))
	assert.True(t, time.Date(2025, 3, 11, 23, 59, 59, int(999*time.Millisecond), loc).Equal(w.EndOfToday))
	assert.True(t, now.Add(24*time.Hour).Equal(w.ReminderEnd))
}

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, time.UTC)

	tests := []struct {
		name      string
		due       *time.Time
		reminder  *time.Time
		status    Status
		overdue   bool
		dueToday  bool
		reminders bool
	}{
		{name: "due one second ago", due: at(now.Add(-time.Second)), overdue: true},
		{name: "due exactly now", due: at(now), dueToday: true},
		{name: "due end of day", due: at(w.EndOfToday), dueToday: true},
		{name: "due start of tomorrow", due: at(w.EndOfToday.Add(time.Millisecond))},
		{name: "due midnight today already passed", due: at(w.StartOfToday), overdue: true},
		{name: "reminder now", reminder: at(now), reminders: true},
		{name: "reminder at horizon", reminder: at(now.Add(24 * time.Hour)), reminders: true},
		{name: "reminder past horizon", reminder: at(now.Add(24*time.Hour + time.Second))},
		{name: "reminder in the past", reminder: at(now.Add(-time.Minute))},
		{name: "overdue with reminder", due: at(now.Add(-time.Hour)), reminder: at(now.Add(time.Hour)), overdue: true, reminders: true},
		{name: "completed never notifies", due: at(now.Add(-time.Hour)), reminder: at(now), status: StatusCompleted},
		{name: "no dates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.status
			if status == "" {
				status = StatusPending
			}
			task := &Task{UUID: uuid.New(), Status: status, DueDate: tt.due, ReminderDate: tt.reminder}

			b := Classify([]*Task{task}, w)

			assert.Equal(t, tt.overdue, len(b.Overdue) == 1, "overdue")
			assert.Equal(t, tt.dueToday, len(b.DueToday) == 1, "dueToday")
			assert.Equal(t, tt.reminders, len(b.Reminders) == 1, "reminders")
			assert.Equal(t, tt.overdue || tt.dueToday || tt.reminders, w.Matches(task))
		})
	}
}

func TestBuckets_Matched(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, time.UTC)

	both := &Task{UUID: uuid.New(), Status: StatusInProgress, DueDate: at(now.Add(time.Hour)), ReminderDate: at(now.Add(time.Minute))}
	late := &Task{UUID: uuid.New(), Status: StatusPending, DueDate: at(now.Add(-time.Hour))}

	b := Classify([]*Task{both, late}, w)
	matched := b.Matched()

	require.Len(t, matched, 2)
	assert.Equal(t, late, matched[0])
	assert.Equal(t, both, matched[1])
}

func TestClassify_EmptyBucketsAreNotNil(t *testing.T) {
	b := Classify(nil, NewWindow(time.Now(), nil))
	assert.NotNil(t, b.Reminders)
	assert.NotNil(t, b.DueToday)
	assert.NotNil(t, b.Overdue)
}
