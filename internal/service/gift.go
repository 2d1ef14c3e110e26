package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GiftService struct {
	giftRepo repository.GiftRepository
	cache    *ratelimit.Cache
	log      *logrus.Logger
}

func NewGiftService(repos *repository.Repositories, cache *ratelimit.Cache, log *logrus.Logger) *GiftService {
	return &GiftService{
		giftRepo: repos.Gift,
		cache:    cache,
		log:      log,
	}
}

type GiftInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Link        string  `json:"link"`
}

// GiftUpdate carries partial edits; nil leaves the field untouched. The
// purchased fields stay manually toggled flags, nothing enforces consistency
// between them.
type GiftUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Link        *string    `json:"link,omitempty"`
	IsPurchased *bool      `json:"isPurchased,omitempty"`
	PurchasedBy *string    `json:"purchasedBy,omitempty"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
}

// List returns the owner's gifts, newest first.
func (s *GiftService) List(ctx context.Context, ownerUID uuid.UUID) ([]*domain.Gift, error) {
	return s.giftRepo.ListByProfile(ctx, ownerUID)
}

func (s *GiftService) Create(ctx context.Context, ownerUID uuid.UUID, input GiftInput) (*domain.Gift, error) {
	now := time.Now()
	gift := &domain.Gift{
		ID:          domain.NewGiftID(),
		ProfileUID:  ownerUID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Link:        input.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := gift.Validate(); err != nil {
		return nil, err
	}

	if err := s.giftRepo.Create(ctx, gift); err != nil {
		return nil, err
	}

	s.cache.Clear()
	return gift, nil
}

func (s *GiftService) Update(ctx context.Context, ownerUID uuid.UUID, giftID string, update GiftUpdate) (*domain.Gift, error) {
	gift, err := s.getOwned(ctx, ownerUID, giftID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		gift.Name = *update.Name
	}
	if update.Description != nil {
		gift.Description = *update.Description
	}
	if update.Price != nil {
		gift.Price = *update.Price
	}
	if update.ImageURL != nil {
		gift.ImageURL = *update.ImageURL
	}
	if update.Link != nil {
		gift.Link = *update.Link
	}
	if update.IsPurchased != nil {
		gift.IsPurchased = *update.IsPurchased
	}
	if update.PurchasedBy != nil {
		gift.PurchasedBy = *update.PurchasedBy
	}
	if update.PurchasedAt != nil {
		gift.PurchasedAt = update.PurchasedAt
	}
	gift.UpdatedAt = time.Now()

	if err := gift.Validate(); err != nil {
		return nil, err
	}

	if err := s.giftRepo.Update(ctx, gift); err != nil {
		return nil, err
	}

	s.cache.Clear()
	return gift, nil
}

func (s *GiftService) Delete(ctx context.Context, ownerUID uuid.UUID, giftID string) error {
	if _, err := s.getOwned(ctx, ownerUID, giftID); err != nil {
		return err
	}

	if err := s.giftRepo.Delete(ctx, giftID); err != nil {
		return err
	}

	s.cache.Clear()
	return nil
}

// getOwned fetches a gift and hides other users' gifts behind not-found.
func (s *GiftService) getOwned(ctx context.Context, ownerUID uuid.UUID, giftID string) (*domain.Gift, error) {
	gift, err := s.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGiftNotFound
		}
		return nil, err
	}
	if gift.ProfileUID != ownerUID {
		return nil, domain.ErrGiftNotFound
	}
	return gift, nil
}
