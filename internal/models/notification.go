package models

import "time"

// Notification types
const (
	NotificationOrderStatus = "order_status"
	NotificationPromotion   = "promotion"
	NotificationSystem      = "system"
)

// ValidNotificationType reports whether t is a known notification type
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationOrderStatus, NotificationPromotion, NotificationSystem:
		return true
	}
	return false
}

type Notification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:idx_notifications_user_read" json:"userId"`
	Type           string    `gorm:"not null" json:"type"`
	Title          string    `gorm:"not null" json:"title"`
	Message        string    `gorm:"not null" json:"message"`
	IsRead         bool      `gorm:"not null;default:false;index:idx_notifications_user_read" json:"isRead"`
	RelatedOrderID *uint     `json:"relatedOrderId,omitempty"`
	RelatedOrder   *Order    `gorm:"constraint:OnDelete:SET NULL" json:"relatedOrder,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
