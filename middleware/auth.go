package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "board_session"

// TokenFromRequest extracts the session token. The cookie is the normal
// path; the query string exists for WebSocket connections (the browser API
// cannot set custom headers) and the bearer header for curl/Postman.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// ParseUserID validates the session token and returns the user ID from its
// `sub` claim.
func ParseUserID(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", errors.New("no token provided")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("could not parse token claims")
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("user ID (sub) claim is missing or invalid")
	}
	return userID, nil
}

// Auth rejects requests without a valid session and puts the user ID into
// the request context for the next handler.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := ParseUserID(TokenFromRequest(r), secret)
			if err != nil {
				http.Error(w, "Unauthorized: invalid or missing session", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Attach populates the user ID when a valid session is present but never
// rejects; handlers that need authentication check for themselves.
func Attach(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := ParseUserID(TokenFromRequest(r), secret); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the authenticated user ID from the context, if any.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
