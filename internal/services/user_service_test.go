package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func TestUserStats(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.DB)
	carts := NewCartService(f.DB)
	orders := NewOrderService(f.DB)
	item := createMenuItem(t, f.DB, "Fried Momo", 180)

	for _, qty := range []int{1, 2} {
		_, err := carts.AddItem(bg, f.Customer.ID, item.ID, qty)
		require.NoError(t, err)
		_, err = orders.PlaceOrder(bg, actorOf(f.Customer), validCustomerInfo())
		require.NoError(t, err)
	}

	summaries, err := users.ListUsers(bg)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	counts := map[string]int64{}
	for _, s := range summaries {
		counts[s.Email] = s.OrderCount
	}
	assert.Equal(t, int64(2), counts[f.Customer.Email])
	assert.Zero(t, counts[f.Admin.Email])

	detail, err := users.GetUserDetail(bg, f.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.OrderCount)
	assert.Len(t, detail.Orders, 2)
	assert.True(t, decimal.NewFromInt(540).Equal(detail.TotalSpent), "total spent was %s", detail.TotalSpent)

	_, err = users.GetUserDetail(bg, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	u := &models.User{Email: " Dawa@Example.com", Name: "Dawa", PasswordHash: "x"}
	require.NoError(t, users.CreateUser(bg, u))
	assert.Equal(t, "dawa@example.com", u.Email)

	err := users.CreateUser(bg, &models.User{Email: "dawa@example.com", Name: "Again", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrConflict)

	found, err := users.GetUserByEmail(bg, "DAWA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, models.RoleCustomer, found.Role)

	_, err = users.GetUserByID(bg, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
