package dataset

import (
	"fmt"
	"strings"
)

// ErrorKind классифицирует нарушение на уровне поля
type ErrorKind string

const (
	// KindSchema - обязательная колонка отсутствует в строке
	KindSchema ErrorKind = "schema"
	// KindType - значение не приводится к объявленному типу
	KindType ErrorKind = "type"
	// KindRange - значение вне объявленного диапазона
	KindRange ErrorKind = "range"
)

// FormatError возникает когда входной текст не раскладывается на заголовок и строки
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid dataset format: %s", e.Reason)
}

// FieldError описывает одно нарушение в конкретной колонке конкретной строки.
// Row - номер строки данных, начиная с 1 (заголовок не считается).
type FieldError struct {
	Row     int
	Column  string
	Kind    ErrorKind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
}

// ValidationErrors собирает все нарушения датасета. Датасет отклоняется
// целиком, если есть хотя бы одно нарушение, но диагностика включает их все.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return "invalid dataset: " + e.Errors[0].Error()
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Error())
	}
	return fmt.Sprintf("invalid dataset (%d violations): %s", len(e.Errors), strings.Join(parts, "; "))
}

// HasKind сообщает, есть ли среди нарушений нарушение данного вида
func (e *ValidationErrors) HasKind(kind ErrorKind) bool {
	for _, fe := range e.Errors {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

func (e *ValidationErrors) add(row int, column string, kind ErrorKind, format string, args ...interface{}) {
	e.Errors = append(e.Errors, &FieldError{
		Row:     row,
		Column:  column,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}
