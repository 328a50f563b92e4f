package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/guimoneda/gradient-bio/internal/types"
)

// OpenEditor opens the inline editor on one entry. Only one editor may be open;
// reopening the same entry returns the existing editor.
func (s *Store) OpenEditor(c types.Collection, index int) (*types.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkIndex(&s.doc, c, index); err != nil {
		return nil, err
	}
	if s.editor != nil {
		if s.editor.Collection == c && s.editor.Index == index {
			return copyEditor(s.editor), nil
		}
		return nil, ErrEditorOpen
	}

	names := c.Fields()
	fields := make([]types.EditorField, 0, len(names))
	for _, name := range names {
		value, _ := s.doc.EntryField(c, index, name)
		fields = append(fields, types.EditorField{Name: name, Value: value})
	}

	s.editor = &types.Editor{
		Token:      uuid.New(),
		Collection: c,
		Index:      index,
		Revision:   s.revision,
		Fields:     fields,
	}
	return copyEditor(s.editor), nil
}

// Editor returns the open inline editor, or nil.
func (s *Store) Editor() *types.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return nil
	}
	return copyEditor(s.editor)
}

// SaveEditor applies the editor's input values to its entry and closes it.
// Values for names outside the entry schema are ignored.
func (s *Store) SaveEditor(ctx context.Context, token uuid.UUID, values map[string]string) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		ed := s.editor
		if ed == nil || ed.Token != token || ed.Revision != s.revision {
			return ErrEditorStale
		}
		fields := make(map[string]string, len(ed.Fields))
		for _, f := range ed.Fields {
			if v, ok := values[f.Name]; ok {
				fields[f.Name] = v
			}
		}
		return applyFields(doc, ed.Collection, ed.Index, fields)
	})
}

// CancelEditor closes the editor without touching the document.
func (s *Store) CancelEditor(token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil || s.editor.Token != token {
		return ErrEditorStale
	}
	s.editor = nil
	return nil
}

func copyEditor(e *types.Editor) *types.Editor {
	out := *e
	out.Fields = append([]types.EditorField(nil), e.Fields...)
	return &out
}
