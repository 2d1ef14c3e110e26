package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the identity record: credentials plus the display name mirrored
// onto the profile. Everything public-facing lives on UserProfile.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:250;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	DisplayName  string    `json:"displayName" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSession backs a refresh token. A user with no session rows is logged
// out everywhere; logout deletes them all.
type UserSession struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	RefreshTokenHash string         `json:"-" gorm:"not null"`
	Metadata         datatypes.JSON `json:"metadata,omitempty"`
	ExpiresAt        time.Time      `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// SessionMetadata is serialized into UserSession.Metadata for auditing.
type SessionMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	RemoteIP  string `json:"remoteIp,omitempty"`
}
