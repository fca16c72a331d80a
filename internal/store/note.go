package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dukerupert/notevault/internal/blob"
	"github.com/dukerupert/notevault/internal/model"
	"github.com/dukerupert/notevault/internal/partition"
)

// titleLimit caps derived titles before the ellipsis is appended.
const titleLimit = 50

// ObjectStore is the slice of the blob store the repository uses.
// Implementations report a missing key with an error matching
// blob.ErrNotFound.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// NoteStore persists notes as individual JSON blobs under per-owner
// partitions. All operations are independent round-trips to the backing
// store; concurrent writes to the same note id are last-write-wins.
type NoteStore struct {
	objects ObjectStore
	parts   partition.Resolver
	ids     IDGenerator
	logger  *slog.Logger
}

func NewNoteStore(objects ObjectStore, parts partition.Resolver, ids IDGenerator, logger *slog.Logger) *NoteStore {
	return &NoteStore{objects: objects, parts: parts, ids: ids, logger: logger}
}

// CreateNote carries the caller-controlled fields of a create request.
// ID and CreatedAt are optional; empty values are generated.
type CreateNote struct {
	Title     string
	Content   string
	ID        string
	CreatedAt string
}

// UpdateNote is a partial update: nil fields leave the stored value
// untouched, non-nil empty strings overwrite to empty.
type UpdateNote struct {
	Title   *string
	Content *string
}

// Create trims the inputs, derives a title when none is given, assigns an
// id and timestamps, and persists the note in the owner's partition.
// It fails with ErrValidation when both title and content are empty.
func (s *NoteStore) Create(ctx context.Context, owner string, in CreateNote) (*model.Note, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" && content == "" {
		return nil, fmt.Errorf("%w: note title or content is required", ErrValidation)
	}

	id := in.ID
	if id == "" {
		id = s.ids.NewID()
	}

	now := model.Now()
	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = now
	}

	note := &model.Note{
		ID:        id,
		Title:     deriveTitle(title, content),
		Content:   content,
		Owner:     owner,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := s.put(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns all of the owner's notes, newest first by createdAt. Blobs
// that fail to parse are skipped with a warning rather than failing the
// whole listing.
func (s *NoteStore) List(ctx context.Context, owner string) ([]model.Note, error) {
	keys, err := s.objects.List(ctx, s.parts.Resolve(owner))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]model.Note, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		data, err := s.objects.Get(ctx, key)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				// Deleted between list and fetch
				continue
			}
			return nil, fmt.Errorf("fetch note %s: %w", key, err)
		}
		var n model.Note
		if err := json.Unmarshal(data, &n); err != nil {
			s.logger.Warn("skipping unreadable note blob", "key", key, "error", err)
			continue
		}
		notes = append(notes, n)
	}

	// Timestamps are fixed-width UTC strings, so string order is time order.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
	return notes, nil
}

// Update merges the patch into the stored note and persists the result.
// The note is located by scanning the owner's partition: updates are
// expressed against the domain object, so it has to be materialized before
// fields can be merged.
func (s *NoteStore) Update(ctx context.Context, owner, id string, patch UpdateNote) (*model.Note, error) {
	notes, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	var note *model.Note
	for i := range notes {
		if notes[i].ID == id {
			note = &notes[i]
			break
		}
	}
	if note == nil {
		return nil, fmt.Errorf("note %s: %w", id, ErrNoteNotFound)
	}

	if patch.Title != nil {
		note.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		note.Content = strings.TrimSpace(*patch.Content)
	}
	note.Title = deriveTitle(note.Title, note.Content)
	note.UpdatedAt = model.Now()

	if err := s.put(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes the note's blob from the owner's partition. A missing id
// is reported as ErrNoteNotFound, a normal negative outcome.
func (s *NoteStore) Delete(ctx context.Context, owner, id string) error {
	key := s.parts.Key(owner, id)
	if _, err := s.objects.Get(ctx, key); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return fmt.Errorf("note %s: %w", id, ErrNoteNotFound)
		}
		return fmt.Errorf("check note %s: %w", id, err)
	}
	if err := s.objects.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (s *NoteStore) put(ctx context.Context, note *model.Note) error {
	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal note %s: %w", note.ID, err)
	}
	if err := s.objects.Put(ctx, s.parts.Key(note.Owner, note.ID), data); err != nil {
		return fmt.Errorf("store note %s: %w", note.ID, err)
	}
	return nil
}

// deriveTitle returns title unchanged when non-empty. Otherwise it takes
// the first line of content, trimmed and truncated to titleLimit runes with
// an ellipsis, falling back to "Untitled Note" when that is empty too.
func deriveTitle(title, content string) string {
	if title == "" && content != "" {
		first, _, _ := strings.Cut(content, "\n")
		first = strings.TrimSpace(first)
		if runes := []rune(first); len(runes) > titleLimit {
			first = string(runes[:titleLimit]) + "..."
		}
		title = first
	}
	if title == "" {
		title = "Untitled Note"
	}
	return title
}
