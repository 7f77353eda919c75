package dto

import (
	"bytes"
	"fmt"
	"taskify/internal/models/task"
	"time"
)

// NullableTime помнит, было ли поле в запросе: null и "" очищают дату
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return nil
	}

	t, err := ParseTime(string(bytes.Trim(trimmed, `"`)))
	if err != nil {
		return err
	}
	n.Value = &t
	return nil
}

func (n NullableTime) Optional() task.OptionalTime {
	if !n.Set {
		return task.OptionalTime{}
	}
	if n.Value == nil {
		return task.ClearTime()
	}
	return task.SetTime(*n.Value)
}

// Ptr возвращает дату для создания; отсутствие и null равнозначны
func (n NullableTime) Ptr() *time.Time {
	return n.Value
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime принимает RFC 3339 и локальные формы без зоны (трактуются как UTC)
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат даты %q", s)
}
