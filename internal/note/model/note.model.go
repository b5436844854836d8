package model

import "time"

// Note is the sole domain entity: a draggable text box on the board.
// The id is client-generated and immutable; user_id and created_at are
// assigned server-side.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateNoteRequest struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// UpdateNoteRequest is the whitelisted partial-update payload. Only text, x
// and y are updatable; id, user_id and created_at sent by a caller are
// dropped on decode.
type UpdateNoteRequest struct {
	Text *string  `json:"text"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

type DeleteNoteResponse struct {
	Success bool `json:"success"`
}
