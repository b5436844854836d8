package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stickyboard/internal/note/model"
	"stickyboard/pkg/logger"
)

var ErrNoteNotFound = errors.New("note not found")

const noteCols = "id, text, x, y, user_id, created_at"

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	if err := scanner.Scan(&n.ID, &n.Text, &n.X, &n.Y, &n.UserID, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Insert stores the note and fills in the server-assigned created_at.
func (r *NoteRepository) Insert(note *model.Note) (*model.Note, error) {
	err := r.DB.QueryRow(
		`INSERT INTO notes (id, text, x, y, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		note.ID, note.Text, note.X, note.Y, note.UserID,
	).Scan(&note.CreatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert note %s: %v", note.ID, err)
		return nil, err
	}
	return note, nil
}

// List returns every note, oldest first. created_at is the sole ordering key.
func (r *NoteRepository) List() ([]model.Note, error) {
	rows, err := r.DB.Query(`SELECT ` + noteCols + ` FROM notes ORDER BY created_at ASC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Get(id string) (*model.Note, error) {
	n, err := scanNote(r.DB.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get note %s: %v", id, err)
		return nil, err
	}
	return n, nil
}

// UpdatePartial applies whichever whitelisted fields the request carries and
// returns the updated row. An empty request is a read.
func (r *NoteRepository) UpdatePartial(id string, req model.UpdateNoteRequest) (*model.Note, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if req.Text != nil {
		args = append(args, *req.Text)
		sets = append(sets, fmt.Sprintf("text = $%d", len(args)))
	}
	if req.X != nil {
		args = append(args, *req.X)
		sets = append(sets, fmt.Sprintf("x = $%d", len(args)))
	}
	if req.Y != nil {
		args = append(args, *req.Y)
		sets = append(sets, fmt.Sprintf("y = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.Get(id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE notes SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), noteCols)

	n, err := scanNote(r.DB.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %s: %v", id, err)
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", id, err)
	}
	return err
}
