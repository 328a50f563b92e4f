package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() Profile {
	return Profile{
		Name:     "Test Person",
		Role:     "Engineer",
		Headline: "Builds things",
		Summary:  "Summary text",
		Stats: Stats{
			"engineers": {Text: "35+"},
			"golives":   {Text: "4", Numeric: true},
		},
		Contact: Contact{
			Email:    "test@example.com",
			LinkedIn: "https://www.linkedin.com/in/test",
			Resume:   "/files/resume.pdf",
		},
		Skills:     []string{"Go", "Agile"},
		Projects:   []ProjectEntry{{Title: "P1", Text: "T1", Outcome: "O1"}},
		Experience: []ExperienceEntry{{Company: "C1", Title: "Lead", Period: "2020", Location: "Remote", Outcome: "Shipped"}},
	}
}

func TestDisplayValue_UnmarshalStringAndNumber(t *testing.T) {
	var stats Stats
	err := json.Unmarshal([]byte(`{"engineers":"35+","golives":4,"ratio":1.5,"none":null}`), &stats)
	require.NoError(t, err)

	assert.Equal(t, DisplayValue{Text: "35+"}, stats["engineers"])
	assert.Equal(t, DisplayValue{Text: "4", Numeric: true}, stats["golives"])
	assert.Equal(t, DisplayValue{Text: "1.5", Numeric: true}, stats["ratio"])
	assert.Equal(t, DisplayValue{}, stats["none"])
}

func TestDisplayValue_RejectsObjects(t *testing.T) {
	var stats Stats
	err := json.Unmarshal([]byte(`{"engineers":{"n":1}}`), &stats)
	assert.Error(t, err)
}

func TestDisplayValue_KeepsNumberKind(t *testing.T) {
	out, err := json.Marshal(Stats{"golives": {Text: "4", Numeric: true}, "countries": {Text: "19+"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"golives":4,"countries":"19+"}`, string(out))
}

func TestDisplayValue_OutOfRangeNumberKeepsLiteral(t *testing.T) {
	var v DisplayValue
	require.NoError(t, json.Unmarshal([]byte(`1e400`), &v))
	assert.Equal(t, DisplayValue{Text: "1e400", Numeric: true}, v)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "1e400", string(out))
}

func TestProfile_JSONRoundTripIsIdentity(t *testing.T) {
	original := sampleProfile()

	data, err := json.MarshalIndent(original, "", "  ")
	require.NoError(t, err)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_CloneKeepsEmptyLists(t *testing.T) {
	var p Profile
	p.Normalize()
	clone := p.Clone()

	out, err := json.Marshal(clone)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"projects":[]`)
	assert.Contains(t, string(out), `"stats":{}`)
}

func TestProfile_CloneIsDeep(t *testing.T) {
	original := sampleProfile()
	clone := original.Clone()

	clone.Projects[0].Title = "changed"
	clone.Experience[0].Company = "changed"
	clone.Skills[0] = "changed"
	clone.Stats["engineers"] = DisplayValue{Text: "0"}

	assert.Equal(t, "P1", original.Projects[0].Title)
	assert.Equal(t, "C1", original.Experience[0].Company)
	assert.Equal(t, "Go", original.Skills[0])
	assert.Equal(t, "35+", original.Stats["engineers"].Text)
}

func TestProfile_EntryFields(t *testing.T) {
	p := sampleProfile()

	v, ok := p.EntryField(Experience, 0, "company")
	assert.True(t, ok)
	assert.Equal(t, "C1", v)

	_, ok = p.EntryField(Experience, 1, "company")
	assert.False(t, ok, "out of range index")

	_, ok = p.EntryField(Projects, 0, "company")
	assert.False(t, ok, "company is not a project field")

	assert.True(t, p.SetEntryField(Projects, 0, "outcome", "new"))
	assert.Equal(t, "new", p.Projects[0].Outcome)
	assert.False(t, p.SetEntryField(Projects, -1, "outcome", "new"))
	assert.False(t, p.SetEntryField(Projects, 0, "bogus", "new"))
}

func TestPlaceholderEntries(t *testing.T) {
	assert.Equal(t, ProjectEntry{Title: "New Project", Text: "Describe project", Outcome: "Outcome"}, NewProjectEntry())
	e := NewExperienceEntry()
	assert.Equal(t, "New Company", e.Company)
	assert.Equal(t, "Year–Year", e.Period)
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Profile) {}},
		{name: "empty contact is fine", mutate: func(p *Profile) { p.Contact = Contact{} }},
		{
			name: "free-form contact values",
			mutate: func(p *Profile) {
				p.Contact = Contact{
					Email:    "[contact@guimoneda.com](mailto:contact@guimoneda.com)",
					LinkedIn: "#",
					Resume:   "assets/cv.pdf",
				}
			},
		},
		{name: "oversized name", mutate: func(p *Profile) { p.Name = strings.Repeat("N", 201) }, wantErr: true},
		{name: "oversized linkedin", mutate: func(p *Profile) { p.Contact.LinkedIn = strings.Repeat("l", 2001) }, wantErr: true},
		{
			name:    "oversized entry title",
			mutate:  func(p *Profile) { p.Projects[0].Title = string(make([]byte, 201)) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfile_Normalize(t *testing.T) {
	var p Profile
	p.Normalize()

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "", "role": "", "headline": "", "summary": "",
		"stats": {},
		"contact": {"email": "", "linkedin": "", "resume": ""},
		"skills": [], "projects": [], "experience": []
	}`, string(out))
}
