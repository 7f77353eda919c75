package models

import "fmt"

// FieldError описывает невалидное поле входных данных
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}
