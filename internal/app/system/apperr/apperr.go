// Package apperr defines the error taxonomy shared by the camp service, the
// stores and the HTTP layer.
//
//   - ErrPermissionDenied: an ownership or role check failed on a mutation.
//   - ErrNotFound: the record does not exist, or exists but is hidden from
//     the viewer. Callers cannot tell the two apart.
//   - ValidationError: a record failed an invariant before a write.
//   - CollaboratorError: the store or the extractor failed. Recoverable.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("sign-in required")
	ErrValidation       = errors.New("validation failed")
	ErrCollaborator     = errors.New("collaborator failure")
)

// FieldError names one field at fault and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Add records a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed, so callers can write
// `return v.OrNil()` after collecting checks.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid is a shortcut for a single-field validation error.
func Invalid(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// CollaboratorError wraps a failure of an external dependency (document
// store, extractor). Op names the operation that failed.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCollaborator.Error(), e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }

// Collaborator wraps err as a CollaboratorError. Taxonomy errors pass through
// unchanged so a store that already reported NotFound keeps that meaning.
func Collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrCollaborator) {
		return err
	}
	return &CollaboratorError{Op: op, Err: err}
}

func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsCollaborator(err error) bool     { return errors.Is(err, ErrCollaborator) }

// Fields returns the field list of a validation error, or nil.
func Fields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
