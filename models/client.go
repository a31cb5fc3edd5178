package models

import (
	"time"

	"gorm.io/gorm"
)

// APIClient is a service consumer of the verification API. Clients
// authenticate with their API key and spend verify credits per address.
type APIClient struct {
	gorm.Model
	Name   string `gorm:"not null" json:"name"`
	APIKey string `gorm:"uniqueIndex;not null" json:"-"`

	VerifyCredits int  `gorm:"default:0" json:"verify_credits"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	LastUsedAt *time.Time `json:"last_used_at"`

	// Relations
	Verifications []EmailVerification `gorm:"foreignKey:ClientID" json:"-"`
}
