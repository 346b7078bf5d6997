package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("navigation session not found")
	ErrMissingPayload  = errors.New("no payload provided")
	ErrPayloadTooLarge = errors.New("payload exceeds size limit")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AnalysisError wraps a failure from the external AI collaborator.
type AnalysisError struct {
	Stage string // "vision", "transcription", "audio", "instruction"
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
