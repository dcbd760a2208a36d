package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func TestSessionIssueAndParse(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, "", false)
	assert.Equal(t, DefaultSessionCookie, m.CookieName())

	token, err := m.Issue(&models.User{ID: 42, Role: models.RoleCustomer})
	require.NoError(t, err)

	identity, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, models.RoleCustomer, identity.Role)
}

func TestSessionParseRejects(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, "", false)
	user := &models.User{ID: 7, Role: models.RoleAdmin}

	t.Run("expired", func(t *testing.T) {
		past := NewSessionManager(testSecret, time.Hour, "", false)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue(user)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessionManager("another-secret", time.Hour, "", false)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non HMAC algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "7",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testSecret, time.Hour, "", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	m.SetCookie(c, "abc")

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, DefaultSessionCookie+"=abc")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Lax")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	m.ClearCookie(c)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
