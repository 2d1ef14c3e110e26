package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"gorm.io/gorm"
)

type giftRepository struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) *giftRepository {
	return &giftRepository{db: db}
}

func (r *giftRepository) Create(ctx context.Context, gift *domain.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
}

func (r *giftRepository) GetByID(ctx context.Context, id string) (*domain.Gift, error) {
	var gift domain.Gift
	err := r.db.WithContext(ctx).First(&gift, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *giftRepository) ListByProfile(ctx context.Context, profileUID uuid.UUID) ([]*domain.Gift, error) {
	var gifts []*domain.Gift
	err := r.db.WithContext(ctx).
		Where("profile_uid = ?", profileUID).
		Order("created_at DESC").
		Find(&gifts).Error
	if err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *giftRepository) Update(ctx context.Context, gift *domain.Gift) error {
	return r.db.WithContext(ctx).Save(gift).Error
}

func (r *giftRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Gift{}, "id = ?", id).Error
}
