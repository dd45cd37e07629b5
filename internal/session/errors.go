package session

import "fmt"

// InputError represents a rejected request: missing or wrong-typed input.
// No side effects have occurred when one is returned.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// NotFoundError represents a reference to an unknown session or chat.
type NotFoundError struct {
	Kind string // "session", "chat"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ServiceError represents a failed or malformed call to an external
// collaborator. It aborts the whole pipeline invocation.
type ServiceError struct {
	Stage string // "extract", "transcribe", "align", "summarize", "chat", "revise"
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error [%s]: %v", e.Stage, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// PartialExtractionError represents a single supplementary document that
// failed to parse. It is logged and skipped, never fatal.
type PartialExtractionError struct {
	File string
	Err  error
}

func (e *PartialExtractionError) Error() string {
	return fmt.Sprintf("extraction error [%s]: %v", e.File, e.Err)
}

func (e *PartialExtractionError) Unwrap() error {
	return e.Err
}
