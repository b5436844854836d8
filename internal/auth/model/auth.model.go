package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpResponse returns the one-time confirmation code directly; a mail
// delivery pipeline is out of scope, so the caller follows the same
// /auth/callback?code=... link a confirmation email would carry.
type SignUpResponse struct {
	UserID string `json:"user_id"`
	Code   string `json:"confirmation_code"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
}
