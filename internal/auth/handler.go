package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stickyboard/internal/auth/model"
	"stickyboard/internal/auth/service"
	"stickyboard/middleware"
	"stickyboard/pkg/logger"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.Service.SignUp(req.Email, req.Password)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to sign up %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, token, err := h.Service.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Sugar.Errorf("Handler: Failed to sign in %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	setSessionCookie(w, r, token)
	writeJSON(w, http.StatusOK, model.SessionResponse{UserID: userID})
}

// Callback exchanges the one-time code from the confirmation link for a
// session. It always redirects to the site root; a missing or unknown code
// just means no cookie is set.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		token, err := h.Service.ExchangeCode(code)
		if err != nil {
			logger.Sugar.Warnf("Handler: Failed to exchange auth code: %v", err)
		} else {
			setSessionCookie(w, r, token)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
