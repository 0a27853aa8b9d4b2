package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("unique constraint violated")
	ErrStorage  = errors.New("storage unavailable")
)

// Error codes carried by AppError
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL"
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string, err error) error {
	if err == nil {
		err = ErrConflict
	}
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     fmt.Errorf("%w: %w", ErrConflict, err),
	}
}

// ErrInternal wraps a failure whose details must not reach the client.
// Message is the client-facing text.
func ErrInternal(message string, err error) error {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// FieldErrors maps field names to messages, preserving the order in which
// fields were first reported.
type FieldErrors struct {
	fields   []string
	messages map[string][]string
}

// Add records a message for field
func (f *FieldErrors) Add(field, message string) {
	if f.messages == nil {
		f.messages = make(map[string][]string)
	}
	if _, ok := f.messages[field]; !ok {
		f.fields = append(f.fields, field)
	}
	f.messages[field] = append(f.messages[field], message)
}

// Has reports whether field already has at least one message
func (f *FieldErrors) Has(field string) bool {
	_, ok := f.messages[field]
	return ok
}

// Fields returns the reported field names in order
func (f *FieldErrors) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Messages returns every message recorded for field
func (f *FieldErrors) Messages(field string) []string {
	return append([]string(nil), f.messages[field]...)
}

// Len returns the number of fields with errors
func (f *FieldErrors) Len() int {
	return len(f.fields)
}

// MarshalJSON encodes the errors as an ordered object of field to its first message
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.messages[field][0])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationError reports a payload that failed a rule set
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s): %v", e.Fields.Len(), e.Fields.fields)
}
