package profile

import (
	"errors"
	"fmt"

	"github.com/guimoneda/gradient-bio/internal/types"
)

var (
	// ErrEditorOpen is returned when an inline editor is already open for another entry.
	ErrEditorOpen = errors.New("another entry is already being edited")
	// ErrEditorStale is returned when an editor token no longer matches the open editor
	// or the document changed since it was opened.
	ErrEditorStale = errors.New("inline editor is no longer valid")
)

// IndexError reports an entry index outside its collection.
type IndexError struct {
	Collection types.Collection
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for %s (len %d)", e.Index, e.Collection, e.Len)
}

// FieldError reports a field name that is not part of the entry schema.
type FieldError struct {
	Collection types.Collection
	Field      string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown %s field %q", e.Collection, e.Field)
}

// ConstraintError reports a change that would break the document's length
// limits. Nothing is changed.
type ConstraintError struct {
	Cause error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("profile constraint violated: %v", e.Cause)
}

func (e *ConstraintError) Unwrap() error {
	return e.Cause
}

// PersistError represents a failure writing the snapshot. The in-memory
// document keeps the mutation.
type PersistError struct {
	Message string
	Cause   error
}

func (e *PersistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persist error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("persist error: %s", e.Message)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}

// ImportError represents an import file that could not be parsed or validated.
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("import error: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
