package models

import (
	"time"
)

// OAuthToken records an access token issued to an API client
type OAuthToken struct {
	ID          uint   `gorm:"primaryKey"`
	ClientID    string `gorm:"not null;index"`
	UserID      string `gorm:"not null"`
	AccessToken string `gorm:"uniqueIndex;not null"`
	Refresh     string `gorm:"index"`
	Scopes      string
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}
