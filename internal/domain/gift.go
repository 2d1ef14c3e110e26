package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Gift is a single wish-list entry owned by a profile. IsPurchased is a
// manually toggled flag; nothing ties it to a purchase event.
type Gift struct {
	ID          string     `json:"id" gorm:"primary_key;size:20"`
	ProfileUID  uuid.UUID  `json:"-" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Link        string     `json:"link,omitempty"`
	IsPurchased bool       `json:"isPurchased" gorm:"default:false"`
	PurchasedBy string     `json:"purchasedBy,omitempty"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewGiftID returns a fresh sortable string ID for a gift document.
func NewGiftID() string {
	return xid.New().String()
}

// Validate checks the fields a client controls before anything is written.
func (g *Gift) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidGiftName
	}
	if g.Price < 0 {
		return ErrInvalidGiftPrice
	}
	return nil
}
