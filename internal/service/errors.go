package service

import "fmt"

// ConflictError - субъект с таким именем уже зарегистрирован (409)
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a student with the ID '%s' already exists. Please use a different student ID", e.Name)
}

// ValidationError - входной датасет не прошел валидацию схемы (400).
// Ошибка вызвана клиентом и не ретраится.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid CSV data format: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// UpstreamError - генеративный сервис недоступен или вернул ошибку (500)
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service failed: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// ResponseValidationError - ответ модели не прошел валидацию схемы (500).
// Отличается от 400: это нарушение контракта upstream-моделью, требующее
// внимания оператора, а не исправления со стороны клиента.
type ResponseValidationError struct {
	Cause error
}

func (e *ResponseValidationError) Error() string {
	return fmt.Sprintf("invalid response format from LLM: %v. SREs have been notified", e.Cause)
}

func (e *ResponseValidationError) Unwrap() error { return e.Cause }

// InternalError - всё неклассифицированное (500)
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }
