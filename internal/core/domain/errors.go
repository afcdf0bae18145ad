package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrImage          = errors.New("image rejected")
	ErrStorageCorrupt = errors.New("stored state is corrupt")
	// ErrStateNotFound is returned by storage backends when no document exists under a key.
	ErrStateNotFound = errors.New("state document not found")
)

// ValidationError reports missing or invalid required input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError is a shorthand used by the services.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError reports an operation targeting an id that is no longer present.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ImageError reports an attachment that is too large or cannot be decoded.
type ImageError struct {
	Reason   string
	TooLarge bool
	Err      error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image: %s: %v", e.Reason, e.Err)
	}
	return "image: " + e.Reason
}

func (e *ImageError) Is(target error) bool { return target == ErrImage }

func (e *ImageError) Unwrap() error { return e.Err }

// StorageCorruptionError is logged by the store when the persisted document
// cannot be parsed. It is recovered internally and never returned to callers.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("storage key %q: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Is(target error) bool { return target == ErrStorageCorrupt }

func (e *StorageCorruptionError) Unwrap() error { return e.Err }
