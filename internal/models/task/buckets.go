package task

import "time"

const ReminderHorizon = 24 * time.Hour

// Window - границы, посчитанные от одного значения now
type Window struct {
	Now          time.Time
	StartOfToday time.Time
	EndOfToday   time.Time
	ReminderEnd  time.Time
}

// NewWindow считает границы дня в часовом поясе loc
func NewWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = now.Location()
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	return Window{
		Now:          now,
		StartOfToday: start,
		EndOfToday:   end,
		ReminderEnd:  now.Add(ReminderHorizon),
	}
}

func (w Window) IsOverdue(t *Task) bool {
	return t.DueDate != nil && t.DueDate.Before(w.Now)
}

// IsDueToday не пересекается с IsOverdue
func (w Window) IsDueToday(t *Task) bool {
	if t.DueDate == nil || w.IsOverdue(t) {
		return false
	}
	return !t.DueDate.Before(w.StartOfToday) && !t.DueDate.After(w.EndOfToday)
}

func (w Window) IsReminder(t *Task) bool {
	if t.ReminderDate == nil {
		return false
	}
	return !t.ReminderDate.Before(w.Now) && !t.ReminderDate.After(w.ReminderEnd)
}

// Matches - задача попадает хотя бы в одну корзину
func (w Window) Matches(t *Task) bool {
	if !t.IsOpen() {
		return false
	}
	return w.IsOverdue(t) || w.IsDueToday(t) || w.IsReminder(t)
}

type Buckets struct {
	Reminders []*Task `json:"reminders"`
	DueToday  []*Task `json:"dueToday"`
	Overdue   []*Task `json:"overdue"`
}

// Classify раскладывает открытые задачи по корзинам; одна задача может быть в нескольких
func Classify(tasks []*Task, w Window) Buckets {
	res := Buckets{
		Reminders: []*Task{},
		DueToday:  []*Task{},
		Overdue:   []*Task{},
	}

	for _, t := range tasks {
		if !t.IsOpen() {
			continue
		}

		if w.IsOverdue(t) {
			res.Overdue = append(res.Overdue, t)
		} else if w.IsDueToday(t) {
			res.DueToday = append(res.DueToday, t)
		}

		if w.IsReminder(t) {
			res.Reminders = append(res.Reminders, t)
		}
	}
	return res
}

// Matched возвращает задачи из всех корзин без повторов
func (b Buckets) Matched() []*Task {
	seen := make(map[*Task]struct{})
	res := []*Task{}
	for _, list := range [][]*Task{b.Overdue, b.DueToday, b.Reminders} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			res = append(res, t)
		}
	}
	return res
}
