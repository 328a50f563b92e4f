// Package profile owns the in-memory profile document: it resolves the initial
// document, exposes the mutation operations, and persists a snapshot after
// every mutation.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/guimoneda/gradient-bio/internal/fetch"
	"github.com/guimoneda/gradient-bio/internal/snapshot"
	"github.com/guimoneda/gradient-bio/internal/types"
	"go.uber.org/zap"
)

// Source identifies which tier of the resolution chain produced the document.
type Source string

const (
	SourceSnapshot Source = "snapshot"
	SourceRemote   Source = "remote"
	SourceEmbedded Source = "embedded"
)

// Options configures a Store.
type Options struct {
	// Snapshots holds the persisted copy. Defaults to an in-memory store.
	Snapshots snapshot.Store
	// SnapshotKey defaults to snapshot.DefaultKey.
	SnapshotKey string
	// RemoteURL is the remote profile resource. Empty skips the remote tier.
	RemoteURL string
	Fetch     *fetch.Options
	Logger    *zap.Logger
}

// Store is the sole write surface for the profile document.
type Store struct {
	snapshots snapshot.Store
	key       string
	remoteURL string
	fetchOpts *fetch.Options
	logger    *zap.Logger

	mu       sync.Mutex
	doc      types.Profile
	source   Source
	revision uint64
	editor   *types.Editor
}

// New creates a Store holding the embedded default document. Call Load to run
// the resolution chain.
func New(opts Options) *Store {
	if opts.Snapshots == nil {
		opts.Snapshots = snapshot.NewMemory()
	}
	if opts.SnapshotKey == "" {
		opts.SnapshotKey = snapshot.DefaultKey
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.DefaultOptions()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	doc := Default()
	doc.Normalize()
	return &Store{
		snapshots: opts.Snapshots,
		key:       opts.SnapshotKey,
		remoteURL: opts.RemoteURL,
		fetchOpts: opts.Fetch,
		logger:    opts.Logger,
		doc:       doc,
		source:    SourceEmbedded,
	}
}

// Load resolves the initial document: snapshot, then remote resource, then the
// embedded default. Failures are logged and the chain moves on; it never fails.
func (s *Store) Load(ctx context.Context) Source {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.readSnapshot(ctx); ok {
		s.install(doc, SourceSnapshot)
		return SourceSnapshot
	}
	return s.resolveFallback(ctx)
}

// Reset deletes the snapshot and reruns the remote and embedded tiers,
// discarding all local edits. The resolved document is not persisted.
func (s *Store) Reset(ctx context.Context) (Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resetErr error
	if err := s.snapshots.Delete(ctx, s.key); err != nil {
		s.logger.Warn("failed to delete snapshot", zap.String("key", s.key), zap.Error(err))
		resetErr = &PersistError{Message: "failed to delete snapshot", Cause: err}
	}
	return s.resolveFallback(ctx), resetErr
}

func (s *Store) readSnapshot(ctx context.Context) (types.Profile, bool) {
	data, err := s.snapshots.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			s.logger.Warn("snapshot read failed, treating as absent", zap.String("key", s.key), zap.Error(err))
		}
		return types.Profile{}, false
	}

	doc, err := decodeDocument(data)
	if err == nil {
		err = doc.Validate()
	}
	if err != nil {
		s.logger.Warn("snapshot is not a valid document, treating as absent", zap.String("key", s.key), zap.Error(err))
		return types.Profile{}, false
	}
	return doc, true
}

// resolveFallback runs the remote and embedded tiers. Caller holds s.mu.
func (s *Store) resolveFallback(ctx context.Context) Source {
	if s.remoteURL != "" {
		doc, err := fetch.Profile(ctx, s.remoteURL, s.fetchOpts)
		if err == nil {
			err = doc.Validate()
		}
		if err == nil {
			s.install(*doc, SourceRemote)
			return SourceRemote
		}
		s.logger.Warn("remote profile unavailable, using embedded default",
			zap.String("url", s.remoteURL), zap.Error(err))
	}

	s.install(Default(), SourceEmbedded)
	return SourceEmbedded
}

// install replaces the document without persisting. Caller holds s.mu.
func (s *Store) install(doc types.Profile, source Source) {
	doc.Normalize()
	s.doc = doc
	s.source = source
	s.revision++
	s.editor = nil
	s.logger.Info("profile resolved", zap.String("source", string(source)), zap.String("name", doc.Name))
}

// decodeDocument parses a serialized profile. Anything but a JSON object is rejected.
func decodeDocument(data []byte) (types.Profile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.Profile{}, fmt.Errorf("document is not a JSON object")
	}
	var doc types.Profile
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return types.Profile{}, err
	}
	return doc, nil
}

// Profile returns a copy of the current document.
func (s *Store) Profile() types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Source reports which resolution tier produced the current document.
func (s *Store) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Revision increases on every change to the document. Entry indices handed out
// at one revision are invalid at the next.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// mutate applies fn to a copy of the document. If fn succeeds and the result
// passes Validate, the copy is installed, the revision is bumped, any open editor
// is closed and the document is persisted.
func (s *Store) mutate(ctx context.Context, fn func(doc *types.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	if err := fn(&doc); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return &ConstraintError{Cause: err}
	}
	s.doc = doc
	s.revision++
	s.editor = nil
	return s.persistLocked(ctx)
}

// AddProject inserts a placeholder project at the front of the list.
func (s *Store) AddProject(ctx context.Context) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		doc.Projects = append([]types.ProjectEntry{types.NewProjectEntry()}, doc.Projects...)
		return nil
	})
}

// AddExperience inserts a placeholder experience entry at the front of the list.
func (s *Store) AddExperience(ctx context.Context) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		doc.Experience = append([]types.ExperienceEntry{types.NewExperienceEntry()}, doc.Experience...)
		return nil
	})
}

// RemoveEntry deletes the entry at index. An out-of-range index returns an
// *IndexError and changes nothing.
func (s *Store) RemoveEntry(ctx context.Context, c types.Collection, index int) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		if err := checkIndex(doc, c, index); err != nil {
			return err
		}
		switch c {
		case types.Projects:
			doc.Projects = append(doc.Projects[:index:index], doc.Projects[index+1:]...)
		case types.Experience:
			doc.Experience = append(doc.Experience[:index:index], doc.Experience[index+1:]...)
		}
		return nil
	})
}

// ClearCollection empties a collection. Callers gate this behind a confirmation.
func (s *Store) ClearCollection(ctx context.Context, c types.Collection) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		switch c {
		case types.Projects:
			doc.Projects = []types.ProjectEntry{}
		case types.Experience:
			doc.Experience = []types.ExperienceEntry{}
		default:
			return fmt.Errorf("unknown collection: %q", c)
		}
		return nil
	})
}

// UpdateEntry overwrites the given fields of the entry at index; other fields
// are left unchanged. Unknown field names and bad indices change nothing.
func (s *Store) UpdateEntry(ctx context.Context, c types.Collection, index int, fields map[string]string) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		return applyFields(doc, c, index, fields)
	})
}

func applyFields(doc *types.Profile, c types.Collection, index int, fields map[string]string) error {
	if err := checkIndex(doc, c, index); err != nil {
		return err
	}
	for name := range fields {
		if !c.HasField(name) {
			return &FieldError{Collection: c, Field: name}
		}
	}
	for name, value := range fields {
		doc.SetEntryField(c, index, name, value)
	}
	return nil
}

// UpdateScalarFields overwrites name, headline and summary.
func (s *Store) UpdateScalarFields(ctx context.Context, name, headline, summary string) error {
	return s.mutate(ctx, func(doc *types.Profile) error {
		doc.Name = name
		doc.Headline = headline
		doc.Summary = summary
		return nil
	})
}

// ReplaceDocument swaps in a whole new document.
func (s *Store) ReplaceDocument(ctx context.Context, doc types.Profile) error {
	doc.Normalize()
	return s.mutate(ctx, func(current *types.Profile) error {
		*current = doc.Clone()
		return nil
	})
}

// Persist writes the current document to the snapshot store.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return &PersistError{Message: "failed to marshal profile", Cause: err}
	}
	if err := s.snapshots.Put(ctx, s.key, data); err != nil {
		s.logger.Warn("failed to persist snapshot", zap.String("key", s.key), zap.Error(err))
		return &PersistError{Message: "failed to write snapshot", Cause: err}
	}
	return nil
}

func checkIndex(doc *types.Profile, c types.Collection, index int) error {
	if _, err := types.ParseCollection(string(c)); err != nil {
		return err
	}
	if n := doc.Len(c); index < 0 || index >= n {
		return &IndexError{Collection: c, Index: index, Len: n}
	}
	return nil
}
