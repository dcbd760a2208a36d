package models

import "time"

// Cart is the single line-item collection owned by a user
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_menu_item" json:"-"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_cart_menu_item" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"menuItem,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
}
