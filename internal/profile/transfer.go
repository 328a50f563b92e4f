package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guimoneda/gradient-bio/internal/schemas"
	"github.com/guimoneda/gradient-bio/internal/types"
	"go.uber.org/zap"
)

// ExportFilename is the fixed name of the downloadable export.
const ExportFilename = "site-profile.json"

// Export returns the current document pretty-printed with two-space indentation.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// ParseImport parses and validates an import file without touching any store.
func ParseImport(data []byte) (types.Profile, error) {
	if !json.Valid(data) {
		return types.Profile{}, &ImportError{Message: "Invalid JSON"}
	}
	if err := schemas.ValidateProfile(data); err != nil {
		return types.Profile{}, &ImportError{Message: "document does not match the profile schema", Cause: err}
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return types.Profile{}, &ImportError{Message: "failed to decode profile", Cause: err}
	}
	if err := doc.Validate(); err != nil {
		return types.Profile{}, &ImportError{Message: "profile failed validation", Cause: err}
	}
	return doc, nil
}

// Import replaces the document with the contents of an import file. On any
// parse or validation failure the current document is left untouched.
func (s *Store) Import(ctx context.Context, data []byte) error {
	doc, err := ParseImport(data)
	if err != nil {
		s.logger.Warn("import rejected", zap.Error(err))
		return err
	}
	if err := s.ReplaceDocument(ctx, doc); err != nil {
		return err
	}
	s.logger.Info("profile imported", zap.String("name", doc.Name))
	return nil
}
