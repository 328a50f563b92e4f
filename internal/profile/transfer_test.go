package profile

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/guimoneda/gradient-bio/internal/snapshot"
	"github.com/guimoneda/gradient-bio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_PrettyPrinted(t *testing.T) {
	s := newLoadedStore(t, snapshot.NewMemory())

	data, err := s.Export()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"name\": \"Guilherme Moneda\""))
	assert.Contains(t, string(data), `"golives": 4`)
	assert.Equal(t, "site-profile.json", ExportFilename)
}

func TestExportImport_IsIdentity(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) *Store
	}{
		{
			name: "edited entry",
			store: func(t *testing.T) *Store {
				s := newLoadedStore(t, snapshot.NewMemory())
				require.NoError(t, s.AddExperience(context.Background()))
				require.NoError(t, s.UpdateEntry(context.Background(), types.Experience, 0,
					map[string]string{"company": "<b>Acme</b>"}))
				return s
			},
		},
		{
			name: "scalars at the length limit",
			store: func(t *testing.T) *Store {
				s := newLoadedStore(t, snapshot.NewMemory())
				require.NoError(t, s.UpdateScalarFields(context.Background(),
					strings.Repeat("N", 200), strings.Repeat("H", 500), ""))
				return s
			},
		},
		{
			name: "cleared collections",
			store: func(t *testing.T) *Store {
				s := newLoadedStore(t, snapshot.NewMemory())
				require.NoError(t, s.ClearCollection(context.Background(), types.Projects))
				require.NoError(t, s.ClearCollection(context.Background(), types.Experience))
				return s
			},
		},
		{
			name: "remote document with free-form contact values",
			store: func(t *testing.T) *Store {
				srv, _ := remoteServer(t, http.StatusOK, freeFormRemoteDoc)
				s := New(Options{RemoteURL: srv.URL})
				require.Equal(t, SourceRemote, s.Load(context.Background()))
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store(t)
			before := s.Profile()

			data, err := s.Export()
			require.NoError(t, err)

			other := newLoadedStore(t, snapshot.NewMemory())
			require.NoError(t, other.Import(context.Background(), data))

			if diff := cmp.Diff(before, other.Profile()); diff != "" {
				t.Errorf("import of export differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImport_PersistsAndReplaces(t *testing.T) {
	ctx := context.Background()
	snaps := snapshot.NewMemory()
	s := newLoadedStore(t, snaps)

	doc := `{"name":"Imported","projects":[],"experience":[{"company":"Solo"}]}`
	require.NoError(t, s.Import(ctx, []byte(doc)))

	got := s.Profile()
	assert.Equal(t, "Imported", got.Name)
	assert.Empty(t, got.Skills)
	assert.NotNil(t, got.Stats)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Solo", got.Experience[0].Company)
	assert.Equal(t, "Imported", persisted(t, snaps).Name)
}

func TestImport_InvalidLeavesDocumentUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{name: "not json", data: `{"name": `, message: "Invalid JSON"},
		{name: "empty", data: ``, message: "Invalid JSON"},
		{name: "array", data: `[]`, message: "schema"},
		{name: "missing collections", data: `{"name":"x"}`, message: "schema"},
		{name: "wrong entry type", data: `{"name":"x","projects":[1],"experience":[]}`, message: "schema"},
		{
			name:    "oversized name",
			data:    `{"name":"` + strings.Repeat("x", 201) + `","projects":[],"experience":[]}`,
			message: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			snaps := snapshot.NewMemory()
			s := newLoadedStore(t, snaps)
			before := s.Profile()
			rev := s.Revision()

			err := s.Import(ctx, []byte(tt.data))

			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Contains(t, importErr.Error(), tt.message)
			if diff := cmp.Diff(before, s.Profile()); diff != "" {
				t.Errorf("document changed (-want +got):\n%s", diff)
			}
			assert.Equal(t, rev, s.Revision())
			_, err = snaps.Get(ctx, snapshot.DefaultKey)
			assert.ErrorIs(t, err, snapshot.ErrNotFound)
		})
	}
}

func TestParseImport_KeepsStatKinds(t *testing.T) {
	doc, err := ParseImport([]byte(`{"name":"x","stats":{"a":"1","b":2},"projects":[],"experience":[]}`))
	require.NoError(t, err)
	assert.Equal(t, types.DisplayValue{Text: "1"}, doc.Stats["a"])
	assert.Equal(t, types.DisplayValue{Text: "2", Numeric: true}, doc.Stats["b"])
}

func TestParseImport_OutOfRangeStatKeepsLiteral(t *testing.T) {
	doc, err := ParseImport([]byte(`{"name":"x","stats":{"huge":1e400},"projects":[],"experience":[]}`))
	require.NoError(t, err)
	assert.Equal(t, types.DisplayValue{Text: "1e400", Numeric: true}, doc.Stats["huge"])
}
