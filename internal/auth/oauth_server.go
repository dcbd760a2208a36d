package auth

import (
	"time"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// OAuthService issues client_credentials tokens to registered API clients
type OAuthService struct {
	server *server.Server
	tokens *GormTokenStore
}

// NewOAuthService wires the token server to GORM storage. A non-positive
// tokenTTL keeps the library default of two hours.
func NewOAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *OAuthService {
	manager := manage.NewDefaultManager()
	tokenCfg := *manage.DefaultClientTokenCfg
	if tokenTTL > 0 {
		tokenCfg.AccessTokenExp = tokenTTL
	}
	manager.SetClientTokenCfg(&tokenCfg)

	// same secret as browser sessions, so Authenticate accepts both
	manager.MapAccessGenerate(NewClientJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS256, db))

	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)
	manager.MapClientStorage(NewGormClientStore(db))

	srv := server.NewDefaultServer(manager)
	srv.SetAllowedGrantType(oauth2.ClientCredentials)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	return &OAuthService{server: srv, tokens: tokenStore}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}

// Tokens exposes the store so the purge loop can drop expired rows
func (o *OAuthService) Tokens() *GormTokenStore {
	return o.tokens
}
