package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
)

type UserRepository interface {
	// CreateWithProfile writes the identity, the profile and the username
	// reservation in a single transaction: all three or none.
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile, reservation *domain.UsernameReservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ProfileRepository interface {
	GetByUID(ctx context.Context, uid uuid.UUID) (*domain.UserProfile, error)
	// GetReservation resolves a public username to its owner UID.
	GetReservation(ctx context.Context, username string) (*domain.UsernameReservation, error)
	// Update writes the full profile record back (full-document overwrite).
	Update(ctx context.Context, profile *domain.UserProfile) error
	ListPublic(ctx context.Context, limit int) ([]*domain.UserProfile, error)
}

type GiftRepository interface {
	Create(ctx context.Context, gift *domain.Gift) error
	GetByID(ctx context.Context, id string) (*domain.Gift, error)
	// ListByProfile returns gifts newest first.
	ListByProfile(ctx context.Context, profileUID uuid.UUID) ([]*domain.Gift, error)
	Update(ctx context.Context, gift *domain.Gift) error
	Delete(ctx context.Context, id string) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Profile ProfileRepository
	Gift    GiftRepository
}
