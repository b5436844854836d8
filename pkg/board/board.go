package board

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"stickyboard/internal/note/model"
	"stickyboard/socket"
)

// Widget footprint on the canvas, used to keep new notes on screen.
const (
	noteWidth  = 200
	noteHeight = 150
)

// API is the slice of the client wrapper the board needs.
type API interface {
	FetchNotes(ctx context.Context) ([]model.Note, error)
	CreateNote(ctx context.Context, req model.CreateNoteRequest) (*model.Note, error)
	UpdateNote(ctx context.Context, id string, updates model.UpdateNoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Board holds the local note collection and reconciles it against both
// user-initiated edits and change-feed events. Feed events arrive on their
// own goroutine, so the collection is mutex-guarded.
type Board struct {
	api API

	mu    sync.Mutex
	notes []model.Note
}

func New(api API) *Board {
	return &Board{api: api}
}

// Load replaces the local collection with the server's (already ordered by
// creation time ascending).
func (b *Board) Load(ctx context.Context) error {
	notes, err := b.api.FetchNotes(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.notes = notes
	b.mu.Unlock()
	return nil
}

// Notes returns a snapshot of the local collection.
func (b *Board) Notes() []model.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// ApplyEvent reconciles one change-feed event. INSERT upserts by id so the
// echo of a locally-created note never duplicates it; UPDATE replaces the
// matching row; DELETE removes it.
func (b *Board) ApplyEvent(ev socket.Event) error {
	switch ev.Type {
	case socket.InsertType, socket.UpdateType:
		var n model.Note
		if err := json.Unmarshal(ev.Payload, &n); err != nil {
			return fmt.Errorf("decode %s payload: %w", ev.Type, err)
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.notes {
			if b.notes[i].ID == n.ID {
				b.notes[i] = n
				return nil
			}
		}
		if ev.Type == socket.InsertType {
			b.notes = append(b.notes, n)
		}
		return nil

	case socket.DeleteType:
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Payload, &ref); err != nil {
			return fmt.Errorf("decode DELETE payload: %w", err)
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.notes {
			if b.notes[i].ID == ref.ID {
				b.notes = append(b.notes[:i], b.notes[i+1:]...)
				return nil
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

// DragEnd persists the final drag position. The local note moves only after
// the server confirms; there is no optimistic position update.
func (b *Board) DragEnd(ctx context.Context, id string, x, y float64) error {
	if _, err := b.api.UpdateNote(ctx, id, model.UpdateNoteRequest{X: &x, Y: &y}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes[i].X = x
			b.notes[i].Y = y
			break
		}
	}
	return nil
}

// EditText applies the new text optimistically and persists it. On failure
// the captured prior value is restored.
func (b *Board) EditText(ctx context.Context, id, text string) error {
	b.mu.Lock()
	var prior string
	found := false
	for i := range b.notes {
		if b.notes[i].ID == id {
			prior = b.notes[i].Text
			b.notes[i].Text = text
			found = true
			break
		}
	}
	b.mu.Unlock()
	if !found {
		return fmt.Errorf("no note with id %s", id)
	}

	if _, err := b.api.UpdateNote(ctx, id, model.UpdateNoteRequest{Text: &text}); err != nil {
		b.mu.Lock()
		for i := range b.notes {
			if b.notes[i].ID == id {
				b.notes[i].Text = prior
				break
			}
		}
		b.mu.Unlock()
		return err
	}
	return nil
}

// AddNote creates a note with a timestamp-derived id at a random position
// inside the viewport. The note is not appended locally; the change-feed
// echo renders it (and the upsert in ApplyEvent keeps that safe).
func (b *Board) AddNote(ctx context.Context, viewportWidth, viewportHeight float64) (*model.Note, error) {
	req := model.CreateNoteRequest{
		ID:   strconv.FormatInt(time.Now().UnixMilli(), 10),
		Text: "New note",
		X:    rand.Float64() * max(viewportWidth-noteWidth, 0),
		Y:    rand.Float64() * max(viewportHeight-noteHeight, 0),
	}
	return b.api.CreateNote(ctx, req)
}

// Remove deletes the note on the server and drops it locally.
func (b *Board) Remove(ctx context.Context, id string) error {
	if err := b.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			break
		}
	}
	return nil
}
