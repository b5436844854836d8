package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	authservice "stickyboard/internal/auth/service"
	"stickyboard/internal/note/model"
	"stickyboard/internal/note/repository"
	"stickyboard/internal/note/service"
	"stickyboard/middleware"
	"stickyboard/pkg/logger"
)

type NoteHandler struct {
	Service *service.NoteService
	Auth    *authservice.AuthService
}

func NewNoteHandler(service *service.NoteService, auth *authservice.AuthService) *NoteHandler {
	return &NoteHandler{Service: service, Auth: auth}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.ListNotes()
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to list notes: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// CreateNote requires a session and re-queries the users table for its
// subject before stamping user_id; any user_id in the request body is
// ignored.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if _, err := h.Auth.GetUser(userID); err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.CreateNote(userID, req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create note: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing note id")
		return
	}

	var req model.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.UpdateNote(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "Note not found")
			return
		}
		logger.Sugar.Errorf("Handler: Failed to update note %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing note id")
		return
	}

	if err := h.Service.DeleteNote(id); err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete note %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteNoteResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
