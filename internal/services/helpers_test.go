package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one connection, otherwise every pooled connection sees its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Notification{},
		&models.PasswordResetToken{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test " + role, Role: role, PasswordHash: "unused"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		Description: name + " dumplings",
		Price:       decimal.NewFromInt(price),
		Image:       "momo.jpg",
		Category:    models.CategorySteam,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func actorOf(u *models.User) access.Actor {
	return access.Actor{UserID: u.ID, Role: u.Role}
}

func validCustomerInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Pema Sherpa",
		Phone:   "9800000000",
		Email:   "pema@example.com",
		Address: "Thamel Marg 12",
		City:    "Kathmandu",
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

var bg = context.Background()

// DBFixture is a database with one admin and one customer
type DBFixture struct {
	DB       *gorm.DB
	Admin    *models.User
	Customer *models.User
}

func newFixture(t *testing.T) *DBFixture {
	db := setupTestDB(t)
	return &DBFixture{
		DB:       db,
		Admin:    createUser(t, db, "admin@example.com", models.RoleAdmin),
		Customer: createUser(t, db, "customer@example.com", models.RoleCustomer),
	}
}
