package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func TestClientService(t *testing.T) {
	f := newFixture(t)
	clients := NewClientService(f.DB)

	client, secret, err := clients.CreateClient(bg, f.Admin.ID, " Kitchen display ", "http://kitchen.local", "read")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen display", client.Name)
	assert.Equal(t, "client_credentials", client.GrantTypes)
	assert.NotEqual(t, secret, client.Secret)
	assert.True(t, client.VerifyPassword(secret))

	listed, err := clients.ListClients(bg, f.Admin.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	found, err := clients.GetClientByID(bg, client.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Admin.ID, found.UserID)

	for _, access := range []string{"token-a", "token-b"} {
		require.NoError(t, f.DB.Create(&models.OAuthToken{
			ClientID:    client.ID,
			UserID:      "1",
			AccessToken: access,
			ExpiresAt:   time.Now().Add(time.Hour),
		}).Error)
	}
	require.NoError(t, f.DB.Create(&models.OAuthToken{
		ClientID: "other-client", UserID: "1", AccessToken: "token-c", ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	assert.ErrorIs(t, clients.DeleteClient(bg, client.ID, f.Customer.ID), ErrNotFound)
	assert.Equal(t, int64(2), countRows(t, f.DB, &models.OAuthToken{}, "client_id = ?", client.ID),
		"a failed delete keeps the tokens")

	require.NoError(t, clients.DeleteClient(bg, client.ID, f.Admin.ID))
	assert.Zero(t, countRows(t, f.DB, &models.OAuthToken{}, "client_id = ?", client.ID))
	assert.Equal(t, int64(1), countRows(t, f.DB, &models.OAuthToken{}, ""))

	_, err = clients.GetClientByID(bg, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = clients.CreateClient(bg, f.Admin.ID, "", "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
