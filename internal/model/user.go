package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the local mirror of an identity-provider account.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex;not null" json:"externalUserId"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Name           string    `gorm:"not null" json:"name"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
