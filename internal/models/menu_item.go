package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu categories
const (
	CategorySteam   = "steam"
	CategoryFried   = "fried"
	CategorySpecial = "special"
)

// ValidCategory reports whether c is one of the menu categories
func ValidCategory(c string) bool {
	switch c {
	case CategorySteam, CategoryFried, CategorySpecial:
		return true
	}
	return false
}

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"not null" json:"image"`
	Category    string          `gorm:"not null;index" json:"category"`
	IsPopular   bool            `gorm:"not null" json:"isPopular"`
	IsSpicy     bool            `gorm:"not null" json:"isSpicy"`
	IsAvailable bool            `gorm:"not null" json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MenuItemPatch carries a partial update, nil fields are left untouched
type MenuItemPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	IsPopular   *bool            `json:"isPopular"`
	IsSpicy     *bool            `json:"isSpicy"`
	IsAvailable *bool            `json:"isAvailable"`
}

// Apply copies every set field of the patch onto item
func (p MenuItemPatch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.IsPopular != nil {
		item.IsPopular = *p.IsPopular
	}
	if p.IsSpicy != nil {
		item.IsSpicy = *p.IsSpicy
	}
	if p.IsAvailable != nil {
		item.IsAvailable = *p.IsAvailable
	}
}
