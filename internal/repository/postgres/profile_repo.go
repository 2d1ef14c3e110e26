package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUID(ctx context.Context, uid uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "uid = ?", uid).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetReservation(ctx context.Context, username string) (*domain.UsernameReservation, error) {
	var reservation domain.UsernameReservation
	err := r.db.WithContext(ctx).First(&reservation, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) ListPublic(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	var profiles []*domain.UserProfile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
