package service

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"stickyboard/internal/auth/repository"
	"stickyboard/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(repository.NewAuthRepository(db), testSecret), mock
}

func TestSignUpCreatesUserAndCode(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "a@b.c", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO auth_codes (code, user_id) VALUES ($1, $2)`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.SignUp("a@b.c", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.Code)
	assert.NotEqual(t, resp.UserID, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp("", "pw")
	assert.Error(t, err)
	_, err = svc.SignUp("a@b.c", "")
	assert.Error(t, err)
}

func userRow(t *testing.T, id, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow(id, email, string(hash), time.Now())
}

func TestSignInMintsAVerifiableSessionToken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`)).
		WithArgs("a@b.c").
		WillReturnRows(userRow(t, "user-1", "a@b.c", "hunter2"))

	userID, token, err := svc.SignIn("a@b.c", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// The token must validate the same way the middleware validates it.
	sub, err := middleware.ParseUserID(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestSignInWrongPassword(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(userRow(t, "user-1", "a@b.c", "hunter2"))

	_, _, err := svc.SignIn("a@b.c", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestSignInUnknownEmailGivesTheSameError(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("nobody@b.c").
		WillReturnError(sql.ErrNoRows)

	_, _, err := svc.SignIn("nobody@b.c", "whatever")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestSignInStoreFailureIsNotInvalidCredentials(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnError(assert.AnError)

	_, _, err := svc.SignIn("a@b.c", "hunter2")
	require.Error(t, err)
	// A store outage must not masquerade as a bad password.
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestExchangeCodeIsSingleUse(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE auth_codes SET used = TRUE WHERE code = $1 AND used = FALSE RETURNING user_id`)).
		WithArgs("code-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mock.ExpectQuery(`UPDATE auth_codes SET used = TRUE`).
		WithArgs("code-1").
		WillReturnError(sql.ErrNoRows)

	token, err := svc.ExchangeCode("code-1")
	require.NoError(t, err)
	sub, err := middleware.ParseUserID(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	_, err = svc.ExchangeCode("code-1")
	assert.True(t, errors.Is(err, repository.ErrCodeNotFound))
}
