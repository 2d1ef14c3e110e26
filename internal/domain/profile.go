package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// UserProfile is the public record for a user. Exactly one exists per User,
// created together with the identity at registration. Username is immutable
// after creation.
type UserProfile struct {
	UID          uuid.UUID `json:"uid" gorm:"type:uuid;primary_key"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:75;not null"`
	DisplayName  string    `json:"displayName" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:250;not null"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Gifts        []Gift    `json:"gifts" gorm:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UsernameReservation maps a username to its owner and enforces global
// uniqueness. Written in the same transaction as the profile.
type UsernameReservation struct {
	Username  string    `json:"username" gorm:"primary_key;size:75"`
	UID       uuid.UUID `json:"uid" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil means "leave untouched". Username and email are not updatable.
type ProfileUpdate struct {
	DisplayName  *string `json:"displayName,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// ValidateUsername enforces the 3-75 char lowercase slug rule.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 75 {
		return ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateDisplayName enforces the 2-100 char rule.
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return ErrInvalidDisplayName
	}
	return nil
}

// ValidateEmail is a light sanity check; the unique index is the real
// enforcement against duplicates.
func ValidateEmail(email string) error {
	if email == "" || len(email) > 250 || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum length accepted at registration.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrInvalidPassword
	}
	return nil
}

// Apply merges the update into the profile and stamps UpdatedAt. The caller
// writes the full merged record back.
func (p *UserProfile) Apply(update ProfileUpdate) {
	if update.DisplayName != nil {
		p.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		p.Bio = *update.Bio
	}
	if update.ProfileImage != nil {
		p.ProfileImage = *update.ProfileImage
	}
	p.UpdatedAt = time.Now()
}
