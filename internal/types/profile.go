// Package types provides type definitions for structured data used throughout the gradient-bio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Profile is the root document holding all displayable biography data.
type Profile struct {
	Name       string            `json:"name" validate:"max=200"`
	Role       string            `json:"role" validate:"max=200"`
	Headline   string            `json:"headline" validate:"max=500"`
	Summary    string            `json:"summary" validate:"max=4000"`
	Stats      Stats             `json:"stats"`
	Contact    Contact           `json:"contact"`
	Skills     []string          `json:"skills" validate:"dive,max=100"`
	Projects   []ProjectEntry    `json:"projects" validate:"dive"`
	Experience []ExperienceEntry `json:"experience" validate:"dive"`
}

// Contact holds the contact links shown on the page.
type Contact struct {
	Email    string `json:"email" validate:"max=500"`
	LinkedIn string `json:"linkedin" validate:"max=2000"`
	Resume   string `json:"resume" validate:"max=2000"`
}

// Stats maps a named counter (engineers, countries, golives) to its display value.
type Stats map[string]DisplayValue

// DisplayValue is a stat counter that may arrive as a JSON string or number.
// Numeric remembers the original kind so the document serializes back unchanged.
type DisplayValue struct {
	Text    string
	Numeric bool
}

// String returns the display text.
func (v DisplayValue) String() string {
	return v.Text
}

// MarshalJSON writes the value back as a number when it was read as one.
func (v DisplayValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return []byte(v.Text), nil
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a JSON string, number, or null.
func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = DisplayValue{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = DisplayValue{Text: s}
		return nil
	}

	// The literal is kept verbatim, so values beyond float64 range survive a round trip.
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("stat value must be a string or number: %w", err)
	}
	*v = DisplayValue{Text: n.String(), Numeric: true}
	return nil
}

// ProjectEntry is one element of the projects sequence.
type ProjectEntry struct {
	Title   string `json:"title" validate:"max=200"`
	Text    string `json:"text" validate:"max=2000"`
	Outcome string `json:"outcome" validate:"max=1000"`
}

// ExperienceEntry is one element of the experience sequence.
type ExperienceEntry struct {
	Company  string `json:"company" validate:"max=200"`
	Title    string `json:"title" validate:"max=200"`
	Period   string `json:"period" validate:"max=100"`
	Location string `json:"location" validate:"max=200"`
	Outcome  string `json:"outcome" validate:"max=1000"`
}

// NewProjectEntry returns the placeholder entry inserted by "add project".
func NewProjectEntry() ProjectEntry {
	return ProjectEntry{
		Title:   "New Project",
		Text:    "Describe project",
		Outcome: "Outcome",
	}
}

// NewExperienceEntry returns the placeholder entry inserted by "add experience".
func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{
		Company:  "New Company",
		Title:    "New Title",
		Period:   "Year–Year",
		Location: "Location",
		Outcome:  "Outcome",
	}
}

// Field returns the value of a schema field.
func (e *ProjectEntry) Field(name string) (string, bool) {
	switch name {
	case "title":
		return e.Title, true
	case "text":
		return e.Text, true
	case "outcome":
		return e.Outcome, true
	}
	return "", false
}

// SetField overwrites a schema field. It reports false for unknown names.
func (e *ProjectEntry) SetField(name, value string) bool {
	switch name {
	case "title":
		e.Title = value
	case "text":
		e.Text = value
	case "outcome":
		e.Outcome = value
	default:
		return false
	}
	return true
}

// Field returns the value of a schema field.
func (e *ExperienceEntry) Field(name string) (string, bool) {
	switch name {
	case "company":
		return e.Company, true
	case "title":
		return e.Title, true
	case "period":
		return e.Period, true
	case "location":
		return e.Location, true
	case "outcome":
		return e.Outcome, true
	}
	return "", false
}

// SetField overwrites a schema field. It reports false for unknown names.
func (e *ExperienceEntry) SetField(name, value string) bool {
	switch name {
	case "company":
		e.Company = value
	case "title":
		e.Title = value
	case "period":
		e.Period = value
	case "location":
		e.Location = value
	case "outcome":
		e.Outcome = value
	default:
		return false
	}
	return true
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() Profile {
	out := *p
	out.Stats = maps.Clone(p.Stats)
	out.Skills = slices.Clone(p.Skills)
	out.Projects = slices.Clone(p.Projects)
	out.Experience = slices.Clone(p.Experience)
	return out
}

// Len returns the number of entries in a collection.
func (p *Profile) Len(c Collection) int {
	switch c {
	case Projects:
		return len(p.Projects)
	case Experience:
		return len(p.Experience)
	}
	return 0
}

// EntryField reads a field from the entry at index i of collection c.
func (p *Profile) EntryField(c Collection, i int, name string) (string, bool) {
	if i < 0 || i >= p.Len(c) {
		return "", false
	}
	switch c {
	case Projects:
		return p.Projects[i].Field(name)
	case Experience:
		return p.Experience[i].Field(name)
	}
	return "", false
}

// SetEntryField writes a field on the entry at index i of collection c.
func (p *Profile) SetEntryField(c Collection, i int, name, value string) bool {
	if i < 0 || i >= p.Len(c) {
		return false
	}
	switch c {
	case Projects:
		return p.Projects[i].SetField(name, value)
	case Experience:
		return p.Experience[i].SetField(name, value)
	}
	return false
}

// Normalize replaces nil sequences and maps with empty ones so the document
// serializes as [] and {} rather than null.
func (p *Profile) Normalize() {
	if p.Stats == nil {
		p.Stats = Stats{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []ProjectEntry{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceEntry{}
	}
}
