package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

const testSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{})
	require.NoError(t, err)

	return db
}

// createClient stores an admin-owned client whose plain secret is "test_secret"
func createClient(t *testing.T, db *gorm.DB, role string) (*models.User, *models.OAuthClient) {
	user := &models.User{Email: role + "@momo.test", Name: "Owner", Role: role, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte("test_secret"), bcrypt.MinCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:         "test_client_" + role,
		Secret:     string(hashedSecret),
		Domain:     "http://localhost",
		Scopes:     "read write",
		UserID:     user.ID,
		GrantTypes: "client_credentials",
	}
	require.NoError(t, db.Create(client).Error)
	return user, client
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testSecret, time.Hour)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
	assert.NotNil(t, oauthService.Tokens())
}

func TestJWTTokenGeneration(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	user, client := createClient(t, db, models.RoleAdmin)

	tokenInfo, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: "test_secret",
		Scope:        "read",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokenInfo.GetAccess())
	assert.Empty(t, tokenInfo.GetRefresh())

	// the same verifier that reads session cookies accepts client tokens
	sessions := NewSessionManager(testSecret, time.Hour, "", false)
	identity, err := sessions.Parse(tokenInfo.GetAccess())
	require.NoError(t, err)
	assert.True(t, identity.ClientToken)
	assert.Equal(t, client.ID, identity.ClientID)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)

	var stored int64
	db.Model(&models.OAuthToken{}).Where("access_token = ?", tokenInfo.GetAccess()).Count(&stored)
	assert.Equal(t, int64(1), stored)
}

func TestJWTTokenGenerationRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	_, client := createClient(t, db, models.RoleCustomer)

	_, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: "wrong",
	})
	assert.Error(t, err)
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)
	_, client := createClient(t, db, models.RoleAdmin)

	clientStore := NewGormClientStore(db)
	retrieved, err := clientStore.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, retrieved.GetID())
	assert.NotEmpty(t, retrieved.GetUserID())

	verifier, ok := retrieved.(oauth2.ClientPasswordVerifier)
	require.True(t, ok)
	assert.True(t, verifier.VerifyPassword("test_secret"))
	assert.False(t, verifier.VerifyPassword("nope"))

	_, err = clientStore.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTokenStorePurgeExpired(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)
	now := time.Now()

	require.NoError(t, db.Create(&models.OAuthToken{ClientID: "c", AccessToken: "old", ExpiresAt: now.Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.OAuthToken{ClientID: "c", AccessToken: "fresh", ExpiresAt: now.Add(time.Hour)}).Error)

	removed, err := store.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.GetByAccess(context.Background(), "fresh")
	assert.NoError(t, err)
	_, err = store.GetByAccess(context.Background(), "old")
	assert.Error(t, err)
}

func TestHandleToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	_, client := createClient(t, db, models.RoleAdmin)

	router := gin.New()
	router.POST("/api/oauth/token", oauthService.HandleToken)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/oauth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("issues a bearer token", func(t *testing.T) {
		w := post(url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {client.ID},
			"client_secret": {"test_secret"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])
	})

	t.Run("rejects other grants", func(t *testing.T) {
		w := post(url.Values{"grant_type": {"password"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), models.ErrUnsupportedGrantType)
	})

	t.Run("rejects a bad secret", func(t *testing.T) {
		w := post(url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {client.ID},
			"client_secret": {"wrong"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
