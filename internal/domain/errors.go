package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a caller contract violation (absent corpus, nil document, bad parameters).
	ErrInvalidInput = errors.New("invalid input")
	// ErrBookmarkNotFound signals a missing bookmark.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrReadOnlySource signals a write against a source that cannot be modified.
	ErrReadOnlySource = errors.New("bookmark source is read-only")
	// ErrSourceUnavailable signals that the bookmark source could not be read.
	ErrSourceUnavailable = errors.New("bookmark source unavailable")
)

// InvalidDocumentError wraps ErrInvalidInput with the position of the offending document.
type InvalidDocumentError struct {
	Index int
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("%s: document %d has no searchable text", ErrInvalidInput.Error(), e.Index)
}

func (e *InvalidDocumentError) Unwrap() error { return ErrInvalidInput }

// NewInvalidDocument creates an invalid document error.
func NewInvalidDocument(index int) error {
	return &InvalidDocumentError{Index: index}
}
