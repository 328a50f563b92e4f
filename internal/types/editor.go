package types

import (
	"fmt"

	"github.com/google/uuid"
)

// EditorField is one labelled input of the inline editor.
type EditorField struct {
	Name  string
	Value string
}

// Editor is the open inline edit surface for a single entry.
// Token identifies the surface; Revision is the document revision it was opened at.
type Editor struct {
	Token      uuid.UUID
	Collection Collection
	Index      int
	Revision   uint64
	Fields     []EditorField
}

// Title returns the modal heading, e.g. "Edit projects — item #1".
func (e *Editor) Title() string {
	return fmt.Sprintf("Edit %s — item #%d", e.Collection, e.Index+1)
}
