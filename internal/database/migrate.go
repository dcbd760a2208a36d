package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
)

// Models lists every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
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
	}
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

const momoImage = "https://images.unsplash.com/photo-1626776876729-bab4369a5a5a"

// DefaultMenu is the catalog a fresh development database starts with
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Chicken Momo", Description: "Steamed dumplings filled with spiced minced chicken", Price: price(150), Category: models.CategorySteam, IsPopular: true},
		{Name: "Vegetable Momo", Description: "Steamed dumplings with cabbage, carrot and onion", Price: price(120), Category: models.CategorySteam},
		{Name: "Buff Momo", Description: "Traditional steamed buffalo meat dumplings", Price: price(160), Category: models.CategorySteam, IsSpicy: true},
		{Name: "Fried Chicken Momo", Description: "Crispy fried chicken dumplings", Price: price(180), Category: models.CategoryFried, IsPopular: true},
		{Name: "Fried Vegetable Momo", Description: "Golden fried vegetable dumplings", Price: price(150), Category: models.CategoryFried},
		{Name: "Fried Buff Momo", Description: "Fried buffalo dumplings with chilli dip", Price: price(190), Category: models.CategoryFried, IsSpicy: true},
		{Name: "Jhol Momo", Description: "Dumplings served in a tangy sesame and tomato broth", Price: price(180), Category: models.CategorySpecial, IsPopular: true, IsSpicy: true},
		{Name: "Chilli Momo", Description: "Fried dumplings tossed in a hot chilli sauce", Price: price(200), Category: models.CategorySpecial, IsSpicy: true},
	}
}

// SeedMenu inserts DefaultMenu when the catalog is empty and reports how many items were added
func SeedMenu(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.WithField("items", count).Info("Menu already seeded")
		return 0, nil
	}

	items := DefaultMenu()
	for i := range items {
		items[i].Image = momoImage
		items[i].IsAvailable = true
	}
	if err := db.WithContext(ctx).Create(&items).Error; err != nil {
		return 0, fmt.Errorf("seed menu: %w", err)
	}
	log.WithFields(logrus.Fields{"items": len(items)}).Info("Menu seeded")
	return len(items), nil
}
