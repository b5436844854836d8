package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"stickyboard/internal/auth/model"
	"stickyboard/internal/auth/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login endpoint cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	Repo   *repository.AuthRepository
	secret []byte
}

func NewAuthService(repo *repository.AuthRepository, secret string) *AuthService {
	return &AuthService{Repo: repo, secret: []byte(secret)}
}

// SignUp registers a user and issues the one-time confirmation code that
// /auth/callback exchanges for a session.
func (s *AuthService) SignUp(email, password string) (*model.SignUpResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := generateID()
	if userID == "" {
		return nil, errors.New("failed to generate user ID")
	}
	if err := s.Repo.CreateUser(userID, email, string(hash)); err != nil {
		return nil, err
	}

	code := generateID()
	if code == "" {
		return nil, errors.New("failed to generate confirmation code")
	}
	if err := s.Repo.CreateCode(code, userID); err != nil {
		return nil, err
	}

	return &model.SignUpResponse{UserID: userID, Code: code}, nil
}

// SignIn verifies the password and mints a session token.
func (s *AuthService) SignIn(email, password string) (string, string, error) {
	user, err := s.Repo.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return user.ID, token, nil
}

// ExchangeCode turns a one-time confirmation code into a session token.
func (s *AuthService) ExchangeCode(code string) (string, error) {
	userID, err := s.Repo.ConsumeCode(code)
	if err != nil {
		return "", err
	}
	return s.mintToken(userID)
}

// GetUser re-queries the users table. POST /api/notes uses this to make
// sure the session's subject still exists before stamping user_id.
func (s *AuthService) GetUser(userID string) (*model.User, error) {
	return s.Repo.GetUserByID(userID)
}

func (s *AuthService) mintToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
