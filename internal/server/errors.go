package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/guimoneda/gradient-bio/internal/profile"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		indexErr   *profile.IndexError
		fieldErr   *profile.FieldError
		limitErr   *profile.ConstraintError
		importErr  *profile.ImportError
		persistErr *profile.PersistError
		validErr   *ErrValidation
		maxErr     *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &indexErr):
		return http.StatusNotFound
	case errors.As(err, &fieldErr), errors.As(err, &limitErr), errors.As(err, &validErr):
		return http.StatusBadRequest
	case errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, profile.ErrEditorOpen), errors.Is(err, profile.ErrEditorStale):
		return http.StatusConflict
	case errors.As(err, &persistErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the banner text shown on the page for err.
func userMessage(err error) string {
	var (
		importErr *profile.ImportError
		limitErr  *profile.ConstraintError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		return fmt.Sprintf("Import file is larger than %d bytes", maxErr.Limit)
	case errors.As(err, &importErr):
		if importErr.Message == "Invalid JSON" {
			return "Invalid JSON"
		}
		return "Import failed: " + importErr.Message
	case errors.As(err, &limitErr):
		return "A value is too long; nothing was saved."
	case errors.Is(err, profile.ErrEditorOpen):
		return "Another entry is already being edited. Save or cancel it first."
	case errors.Is(err, profile.ErrEditorStale):
		return "The profile changed while you were editing. Please try again."
	}
	return err.Error()
}
