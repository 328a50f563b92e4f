package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfile = `{
	"name": "Test Person",
	"role": "Engineer",
	"stats": {"engineers": "35+", "golives": 4},
	"contact": {"email": "test@example.com"},
	"skills": ["Go"],
	"projects": [{"title": "P", "text": "T", "outcome": "O"}],
	"experience": []
}`

func TestValidateProfile_Valid(t *testing.T) {
	assert.NoError(t, ValidateProfile([]byte(validProfile)))
}

func TestValidateProfile_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{name: "missing required fields", document: `{"role": "Engineer"}`},
		{name: "root is not an object", document: `[1, 2, 3]`},
		{name: "projects is not an array", document: `{"name": "x", "projects": {}, "experience": []}`},
		{name: "entry field wrong type", document: `{"name": "x", "projects": [{"title": 7}], "experience": []}`},
		{name: "stat is an object", document: `{"name": "x", "stats": {"a": {}}, "projects": [], "experience": []}`},
		{name: "skills contain numbers", document: `{"name": "x", "skills": [1], "projects": [], "experience": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile([]byte(tt.document))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateProfile_MalformedJSON(t *testing.T) {
	err := ValidateProfile([]byte(`{ invalid json }`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(validProfile), 0644))
	assert.NoError(t, ValidateProfileFile(path))

	err := ValidateProfileFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("nonexistent.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "nonexistent.schema.json")
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "projects.0.title", Message: "Invalid type"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "1. name: is required")
	assert.Contains(t, msg, "2. projects.0.title: Invalid type")
}
