package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s belongs to the status vocabulary
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Label renders the status for humans, e.g. "Out for delivery"
func (s OrderStatus) Label() string {
	str := strings.ReplaceAll(string(s), "_", " ")
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// CustomerInfo is the delivery contact captured at checkout
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

// Order is an immutable snapshot of a checked-out cart; only Status changes
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"userId"`
	User         *User           `json:"user,omitempty"`
	Items        []OrderItem     `json:"items"`
	CustomerInfo CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Status       OrderStatus     `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderItem copies name and price so later menu edits leave the order untouched
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	OrderID    uint            `gorm:"not null;index" json:"-"`
	MenuItemID uint            `gorm:"not null" json:"menuItemId"`
	Name       string          `gorm:"not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
}

// LineTotal is price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusHistory is one append-only status transition record
type OrderStatusHistory struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderID     uint        `gorm:"not null;index" json:"orderId"`
	Status      OrderStatus `gorm:"type:varchar(32);not null" json:"status"`
	UpdatedByID uint        `gorm:"not null" json:"-"`
	UpdatedBy   *User       `json:"updatedBy,omitempty"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
