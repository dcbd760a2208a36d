package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/auth"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	log "github.com/sirupsen/logrus"
)

const actorKey = "actor"

// UserResolver loads the user a token refers to
type UserResolver interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AccessTokenStore looks up OAuth2 access tokens still on record.
// auth.GormTokenStore implements it.
type AccessTokenStore interface {
	GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error)
}

// Authenticate resolves the acting identity from the session cookie or a
// Bearer token and stores it in the context. It never aborts: requests
// without a valid identity continue anonymously and are stopped by Require.
// OAuth2 access tokens count only while their row exists in tokens, so
// deleting a client revokes what it issued.
func Authenticate(sessions *auth.SessionManager, users UserResolver, tokens AccessTokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, raw := range tokensFromRequest(c, sessions.CookieName()) {
			if actor, ok := resolveActor(c, sessions, users, tokens, raw); ok {
				SetActor(c, actor)
				break
			}
		}
		c.Next()
	}
}

func resolveActor(c *gin.Context, sessions *auth.SessionManager, users UserResolver, tokens AccessTokenStore, raw string) (access.Actor, bool) {
	ctx := c.Request.Context()
	identity, err := sessions.Parse(raw)
	if err != nil {
		log.WithError(err).Debug("Rejected session token")
		return access.Actor{}, false
	}

	if identity.ClientToken && !issued(ctx, tokens, raw, identity.ClientID) {
		log.WithFields(log.Fields{
			"user_id":   identity.UserID,
			"client_id": identity.ClientID,
		}).Debug("Access token is not on record")
		return access.Actor{}, false
	}

	// The stored role is authoritative, the token only names the user
	user, err := users.GetUserByID(ctx, identity.UserID)
	if err != nil {
		log.WithError(err).WithField("user_id", identity.UserID).Debug("Token subject did not resolve")
		return access.Actor{}, false
	}
	return access.Actor{UserID: user.ID, Role: user.Role}, true
}

// issued reports whether raw is a stored, unexpired token of clientID
func issued(ctx context.Context, tokens AccessTokenStore, raw, clientID string) bool {
	if tokens == nil {
		return false
	}
	info, err := tokens.GetByAccess(ctx, raw)
	if err != nil || info == nil {
		return false
	}
	if clientID != "" && info.GetClientID() != clientID {
		return false
	}
	return info.GetAccessCreateAt().Add(info.GetAccessExpiresIn()).After(time.Now())
}

// tokensFromRequest lists the session cookie, then the RFC 6750 Bearer header
func tokensFromRequest(c *gin.Context, cookieName string) []string {
	var raw []string
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		raw = append(raw, cookie)
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if bearer := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); bearer != "" {
			raw = append(raw, bearer)
		}
	}
	return raw
}

// ActorFrom returns the identity resolved by Authenticate
func ActorFrom(c *gin.Context) (access.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return access.Actor{}, false
	}
	actor, ok := v.(access.Actor)
	return actor, ok
}

// SetActor stores an identity in the context
func SetActor(c *gin.Context, actor access.Actor) {
	c.Set(actorKey, actor)
}
