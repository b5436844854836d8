package service

import (
	"strconv"
	"time"

	"stickyboard/internal/note/model"
	"stickyboard/internal/note/repository"
	"stickyboard/socket"
)

type NoteService struct {
	Repo *repository.NoteRepository
	Hub  *socket.Hub
}

func NewNoteService(repo *repository.NoteRepository, hub *socket.Hub) *NoteService {
	return &NoteService{Repo: repo, Hub: hub}
}

func (s *NoteService) ListNotes() ([]model.Note, error) {
	return s.Repo.List()
}

// CreateNote stamps user_id from the session and inserts the note. The id
// normally arrives from the client; a missing one gets the same
// timestamp-derived form the client would have generated.
func (s *NoteService) CreateNote(userID string, req model.CreateNoteRequest) (*model.Note, error) {
	id := req.ID
	if id == "" {
		id = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	note := &model.Note{
		ID:     id,
		Text:   req.Text,
		X:      req.X,
		Y:      req.Y,
		UserID: userID,
	}
	created, err := s.Repo.Insert(note)
	if err != nil {
		return nil, err
	}

	// The creating client renders the note from this echo.
	s.Hub.Broadcast <- socket.NewEvent(socket.InsertType, socket.TableNotes, created)
	return created, nil
}

func (s *NoteService) UpdateNote(id string, req model.UpdateNoteRequest) (*model.Note, error) {
	updated, err := s.Repo.UpdatePartial(id, req)
	if err != nil {
		return nil, err
	}

	s.Hub.Broadcast <- socket.NewEvent(socket.UpdateType, socket.TableNotes, updated)
	return updated, nil
}

func (s *NoteService) DeleteNote(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.Hub.Broadcast <- socket.NewEvent(socket.DeleteType, socket.TableNotes, map[string]string{"id": id})
	return nil
}
