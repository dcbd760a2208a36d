package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

// captureMailer records the last reset token it was asked to deliver
type captureMailer struct {
	user  *models.User
	token string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, user *models.User, token string) error {
	m.user, m.token = user, token
	return nil
}

func newAuthFixture(t *testing.T, admins ...string) (*authService, *captureMailer) {
	db := setupTestDB(t)
	mailer := &captureMailer{}
	svc := NewAuthService(db, NewUserService(db), mailer, admins, time.Minute).(*authService)
	return svc, mailer
}

func signUp(t *testing.T, svc AuthService, email string) *models.User {
	t.Helper()
	user, err := svc.SignUp(bg, SignUpInput{Email: email, Password: "momo-lover-1", Name: "Tashi"})
	require.NoError(t, err)
	return user
}

func TestSignUp(t *testing.T) {
	svc, _ := newAuthFixture(t, " Boss@Momo.test ")

	user := signUp(t, svc, "  Tashi@Example.COM ")
	assert.Equal(t, "tashi@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "momo-lover-1", user.PasswordHash)

	admin := signUp(t, svc, "boss@momo.test")
	assert.Equal(t, models.RoleAdmin, admin.Role)

	t.Run("duplicate email is a conflict regardless of case", func(t *testing.T) {
		_, err := svc.SignUp(bg, SignUpInput{Email: "TASHI@example.com", Password: "another-pass", Name: "Copy"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, int64(1), countRows(t, svc.db, &models.User{}, "email = ?", "tashi@example.com"))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.SignUp(bg, SignUpInput{Email: "short@example.com", Password: "1234567", Name: "Short"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.SignUp(bg, SignUpInput{Email: "anon@example.com", Password: "long-enough"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestSignIn(t *testing.T) {
	svc, _ := newAuthFixture(t)
	created := signUp(t, svc, "tashi@example.com")

	user, err := svc.SignIn(bg, "TASHI@example.com", "momo-lover-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.SignIn(bg, "tashi@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.SignIn(bg, "nobody@example.com", "momo-lover-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.SignIn(bg, "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestForgotPassword(t *testing.T) {
	svc, mailer := newAuthFixture(t)
	user := signUp(t, svc, "tashi@example.com")

	require.NoError(t, svc.ForgotPassword(bg, "nobody@example.com"))
	assert.Empty(t, mailer.token, "unknown emails send nothing")

	require.NoError(t, svc.ForgotPassword(bg, "tashi@example.com"))
	require.NotEmpty(t, mailer.token)
	assert.Equal(t, user.ID, mailer.user.ID)
	assert.Len(t, mailer.token, 64)

	var stored models.PasswordResetToken
	require.NoError(t, svc.db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, hashResetToken(mailer.token), stored.TokenHash)
	assert.NotEqual(t, mailer.token, stored.TokenHash)

	assert.ErrorIs(t, svc.ForgotPassword(bg, " "), ErrInvalidRequest)
}

func TestResetPassword(t *testing.T) {
	t.Run("valid token resets and invalidates every token", func(t *testing.T) {
		svc, mailer := newAuthFixture(t)
		user := signUp(t, svc, "tashi@example.com")

		require.NoError(t, svc.ForgotPassword(bg, user.Email))
		first := mailer.token
		require.NoError(t, svc.ForgotPassword(bg, user.Email))
		second := mailer.token

		require.NoError(t, svc.ResetPassword(bg, first, "brand-new-pass"))
		assert.Zero(t, countRows(t, svc.db, &models.PasswordResetToken{}, "user_id = ?", user.ID))

		_, err := svc.SignIn(bg, user.Email, "brand-new-pass")
		assert.NoError(t, err)
		_, err = svc.SignIn(bg, user.Email, "momo-lover-1")
		assert.ErrorIs(t, err, ErrUnauthorized)

		assert.ErrorIs(t, svc.ResetPassword(bg, second, "another-pass"), ErrInvalidRequest)
	})

	t.Run("expired token leaves the password unchanged", func(t *testing.T) {
		svc, mailer := newAuthFixture(t)
		user := signUp(t, svc, "tashi@example.com")
		require.NoError(t, svc.ForgotPassword(bg, user.Email))

		var before models.User
		require.NoError(t, svc.db.First(&before, user.ID).Error)

		svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		err := svc.ResetPassword(bg, mailer.token, "brand-new-pass")
		assert.ErrorIs(t, err, ErrInvalidRequest)

		var after models.User
		require.NoError(t, svc.db.First(&after, user.ID).Error)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		assert.ErrorIs(t, svc.ResetPassword(bg, "deadbeef", "brand-new-pass"), ErrInvalidRequest)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		assert.ErrorIs(t, svc.ResetPassword(bg, "deadbeef", "short"), ErrInvalidRequest)
	})
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer("http://localhost:5173/", nil)
	assert.Equal(t, "http://localhost:5173", m.ClientOrigin)
	assert.NoError(t, m.SendPasswordReset(bg, &models.User{ID: 1, Email: "a@b.c"}, "abc"))
}
