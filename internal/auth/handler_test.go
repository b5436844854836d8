package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"stickyboard/internal/auth/repository"
	"stickyboard/internal/auth/service"
	"stickyboard/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(service.NewAuthService(repository.NewAuthRepository(db), "test-secret")), mock
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestCallbackExchangesCodeForSessionAndRedirects(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE auth_codes SET used = TRUE WHERE code = $1 AND used = FALSE RETURNING user_id`)).
		WithArgs("code-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))

	rr := httptest.NewRecorder()
	h.Callback(rr, httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1", nil))

	res := rr.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))

	cookie := sessionCookie(res)
	require.NotNil(t, cookie, "callback should set the session cookie")
	sub, err := middleware.ParseUserID(cookie.Value, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.True(t, cookie.HttpOnly)
}

func TestCallbackWithoutCodeStillRedirects(t *testing.T) {
	h, mock := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.Callback(rr, httptest.NewRequest(http.MethodGet, "/auth/callback", nil))

	res := rr.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	assert.Nil(t, sessionCookie(res))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, mock := newTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "a@b.c", string(hash), time.Now()))

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"hunter2"}`)))

	res := rr.Result()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"user_id":"user-1"}`, rr.Body.String())
	require.NotNil(t, sessionCookie(res))
}

func TestLoginBadCredentials(t *testing.T) {
	h, mock := newTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "a@b.c", string(hash), time.Now()))

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"nope"}`)))

	res := rr.Result()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Nil(t, sessionCookie(res))
}

func TestLoginStoreFailureIsServerError(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnError(assert.AnError)

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"hunter2"}`)))

	res := rr.Result()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Nil(t, sessionCookie(res))
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	res := rr.Result()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
