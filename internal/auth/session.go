package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSessionCookie = "momo_session"
	DefaultSessionTTL    = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token says about its bearer
type Identity struct {
	UserID uint
	Role   string
	// ClientToken marks OAuth2 access tokens, which must also be on record
	// in the token store. ClientID is the issuing client when known.
	ClientToken bool
	ClientID    string
}

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed session tokens and manages the session cookie
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, cookieName string, secure bool) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &SessionManager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
		now:        time.Now,
	}
}

func (m *SessionManager) CookieName() string { return m.cookieName }

// Issue signs a session token for the user
func (m *SessionManager) Issue(user *models.User) (string, error) {
	now := m.now()
	claims := SessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a session token or an OAuth2 access token signed with the same secret.
// Session tokens carry the user in "sub", OAuth2 tokens in "uid".
func (m *SessionManager) Parse(raw string) (*Identity, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithIssuedAt(), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, fromClient, err := extractUserID(claims)
	if err != nil {
		return nil, err
	}
	identity := &Identity{UserID: userID, ClientToken: fromClient}
	identity.Role, _ = claims["role"].(string)
	if fromClient {
		identity.ClientID, _ = claims["aud"].(string)
	}
	return identity, nil
}

// SetCookie writes the session token as an HTTP-only cookie
func (m *SessionManager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie
func (m *SessionManager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// extractUserID reads "sub" for sessions or "uid" for client tokens
func extractUserID(claims jwt.MapClaims) (uint, bool, error) {
	var raw string
	fromClient := false
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		raw = sub
	} else if uid, ok := claims["uid"].(string); ok && uid != "" {
		raw, fromClient = uid, true
	} else {
		return 0, false, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false, fmt.Errorf("%w: malformed subject %q", ErrInvalidToken, raw)
	}
	return uint(id), fromClient, nil
}
