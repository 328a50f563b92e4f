package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Collection names one of the ordered entry sequences of a Profile.
type Collection string

const (
	Projects   Collection = "projects"
	Experience Collection = "experience"
)

var (
	projectFields    = []string{"title", "text", "outcome"}
	experienceFields = []string{"company", "title", "period", "location", "outcome"}
)

// ParseCollection converts a path or form value into a Collection.
func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case Projects, Experience:
		return Collection(s), nil
	}
	return "", fmt.Errorf("unknown collection: %q", s)
}

// Fields returns the editable field names of an entry in c, in display order.
func (c Collection) Fields() []string {
	switch c {
	case Projects:
		return append([]string(nil), projectFields...)
	case Experience:
		return append([]string(nil), experienceFields...)
	}
	return nil
}

// HasField reports whether name is part of the entry schema of c.
func (c Collection) HasField(name string) bool {
	for _, f := range c.Fields() {
		if f == name {
			return true
		}
	}
	return false
}

// Validate checks the length limits that every stored document satisfies. Contact
// values are free text: the page accepts a markdown link, "#" or a relative path.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
