package router

import (
	"database/sql"
	"net/http"

	authHandlerPkg "stickyboard/internal/auth"
	authRepository "stickyboard/internal/auth/repository"
	authService "stickyboard/internal/auth/service"
	noteHandlerPkg "stickyboard/internal/note"
	noteRepository "stickyboard/internal/note/repository"
	noteService "stickyboard/internal/note/service"

	"stickyboard/config"
	"stickyboard/middleware"
	"stickyboard/socket"
)

func Setup(cfg *config.Config, db *sql.DB, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.Auth(cfg.SessionSecret)
	attach := middleware.Attach(cfg.SessionSecret)
	gate := middleware.AccessGate(cfg.SessionSecret)

	// WebSocket change feed
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(middleware.UserIDKey).(string)
		socket.ServeWs(hub, w, r, userID)
	})
	mux.Handle("/ws", auth(wsHandler))

	// Identity
	authRepo := authRepository.NewAuthRepository(db)
	authSvc := authService.NewAuthService(authRepo, cfg.SessionSecret)
	authHandler := authHandlerPkg.NewAuthHandler(authSvc)

	mux.HandleFunc("POST /auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/callback", authHandler.Callback)

	// Notes REST API. Attach populates the session when present; the
	// handlers decide what needs authentication.
	noteRepo := noteRepository.NewNoteRepository(db)
	noteSvc := noteService.NewNoteService(noteRepo, hub)
	noteHandler := noteHandlerPkg.NewNoteHandler(noteSvc, authSvc)

	mux.Handle("GET /api/notes", attach(http.HandlerFunc(noteHandler.ListNotes)))
	mux.Handle("POST /api/notes", attach(http.HandlerFunc(noteHandler.CreateNote)))
	mux.Handle("PATCH /api/notes/{id}", attach(http.HandlerFunc(noteHandler.UpdateNote)))
	mux.Handle("DELETE /api/notes/{id}", attach(http.HandlerFunc(noteHandler.DeleteNote)))

	// Pages
	mux.Handle("GET /{$}", gate(http.HandlerFunc(boardPage)))
	mux.Handle("GET /login", gate(http.HandlerFunc(loginPage)))

	return middleware.CORSMiddleware(mux)
}
