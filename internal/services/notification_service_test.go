package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func seedNotifications(t *testing.T, f *DBFixture, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.DB.Create(&models.Notification{
			UserID:  f.Customer.ID,
			Type:    models.NotificationSystem,
			Title:   "Hello",
			Message: "World",
		}).Error)
	}
}

func TestNotificationList(t *testing.T) {
	f := newFixture(t)
	svc := NewNotificationService(f.DB)
	seedNotifications(t, f, 5)

	page, err := svc.List(bg, f.Customer.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)
	assert.Greater(t, page.Notifications[0].ID, page.Notifications[1].ID, "newest first")

	page, err = svc.List(bg, f.Customer.ID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 1)
	assert.False(t, page.HasMore)

	page, err = svc.List(bg, f.Customer.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 5)

	page, err = svc.List(bg, f.Admin.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Notifications)
	assert.Zero(t, page.Total)
}

func TestNotificationReadState(t *testing.T) {
	f := newFixture(t)
	svc := NewNotificationService(f.DB)
	seedNotifications(t, f, 3)

	count, err := svc.UnreadCount(bg, f.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := svc.List(bg, f.Customer.ID, 0, 0)
	require.NoError(t, err)
	first := page.Notifications[0]

	read, err := svc.MarkRead(bg, f.Customer.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	count, err = svc.UnreadCount(bg, f.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// another user's notification is invisible
	_, err = svc.MarkRead(bg, f.Admin.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(bg, f.Admin.ID, first.ID), ErrNotFound)

	updated, err := svc.MarkAllRead(bg, f.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = svc.UnreadCount(bg, f.Customer.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Delete(bg, f.Customer.ID, first.ID))
	assert.Equal(t, int64(2), countRows(t, f.DB, &models.Notification{}, "user_id = ?", f.Customer.ID))
}

func TestNotificationSend(t *testing.T) {
	f := newFixture(t)
	svc := NewNotificationService(f.DB)
	other := createUser(t, f.DB, "other@example.com", models.RoleCustomer)

	base := Broadcast{Type: models.NotificationPromotion, Title: "Momo Monday", Message: "Half price"}

	t.Run("send to all", func(t *testing.T) {
		b := base
		b.SendToAll = true
		n, err := svc.Send(bg, actorOf(f.Admin), b)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("single user", func(t *testing.T) {
		b := base
		b.UserID = &other.ID
		n, err := svc.Send(bg, actorOf(f.Admin), b)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("user list with duplicates", func(t *testing.T) {
		b := base
		b.UserIDs = []uint{f.Customer.ID, other.ID, other.ID}
		n, err := svc.Send(bg, actorOf(f.Admin), b)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	assert.Equal(t, int64(3), countRows(t, f.DB, &models.Notification{}, "user_id = ?", other.ID))

	t.Run("related order", func(t *testing.T) {
		order := models.Order{UserID: other.ID, CustomerInfo: validCustomerInfo(), Status: models.StatusPending}
		require.NoError(t, f.DB.Create(&order).Error)

		b := base
		b.UserID = &other.ID
		b.RelatedOrderID = &order.ID
		n, err := svc.Send(bg, actorOf(f.Admin), b)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, int64(1), countRows(t, f.DB, &models.Notification{}, "related_order_id = ?", order.ID))
	})

	missingOrder := uint(9999)

	testCases := []struct {
		name     string
		mutate   func(b *Broadcast)
		actor    *models.User
		expected error
	}{
		{"no recipient mode", func(b *Broadcast) {}, f.Admin, ErrInvalidRequest},
		{"two recipient modes", func(b *Broadcast) { b.SendToAll = true; b.UserID = &other.ID }, f.Admin, ErrInvalidRequest},
		{"missing title", func(b *Broadcast) { b.Title = ""; b.SendToAll = true }, f.Admin, ErrInvalidRequest},
		{"unknown type", func(b *Broadcast) { b.Type = "spam"; b.SendToAll = true }, f.Admin, ErrInvalidRequest},
		{"unknown recipient", func(b *Broadcast) { b.UserIDs = []uint{other.ID, 9999} }, f.Admin, ErrInvalidRequest},
		{"unknown related order", func(b *Broadcast) { b.SendToAll = true; b.RelatedOrderID = &missingOrder }, f.Admin, ErrInvalidRequest},
		{"customer cannot broadcast", func(b *Broadcast) { b.SendToAll = true }, f.Customer, ErrForbidden},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			before := countRows(t, f.DB, &models.Notification{}, "")
			b := base
			tt.mutate(&b)
			_, err := svc.Send(bg, actorOf(tt.actor), b)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, before, countRows(t, f.DB, &models.Notification{}, ""))
		})
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
