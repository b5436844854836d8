package repository

import (
	"database/sql"
	"errors"

	"stickyboard/internal/auth/model"
	"stickyboard/pkg/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrCodeNotFound = errors.New("auth code not found or already used")
)

type AuthRepository struct {
	DB *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) CreateUser(id, email, passwordHash string) error {
	_, err := r.DB.Exec(`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		id, email, passwordHash)
	if err != nil {
		logger.Sugar.Errorf("Failed to create user %s: %v", email, err)
	}
	return err
}

func (r *AuthRepository) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user by email: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) GetUserByID(id string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) CreateCode(code, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO auth_codes (code, user_id) VALUES ($1, $2)`, code, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to create auth code for user %s: %v", userID, err)
	}
	return err
}

// ConsumeCode atomically marks an unused code as used and returns the user
// it belongs to. A second exchange of the same code fails.
func (r *AuthRepository) ConsumeCode(code string) (string, error) {
	var userID string
	err := r.DB.QueryRow(
		`UPDATE auth_codes SET used = TRUE WHERE code = $1 AND used = FALSE RETURNING user_id`,
		code,
	).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrCodeNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to consume auth code: %v", err)
		return "", err
	}
	return userID, nil
}
