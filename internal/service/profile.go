package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/config"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const publicListLimit = 50

type ProfileService struct {
	profileRepo repository.ProfileRepository
	giftRepo    repository.GiftRepository
	limiter     *ratelimit.Limiter
	cache       *ratelimit.Cache
	cfg         *config.Config
	log         *logrus.Logger
}

func NewProfileService(repos *repository.Repositories, limiter *ratelimit.Limiter, cache *ratelimit.Cache, cfg *config.Config, log *logrus.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: repos.Profile,
		giftRepo:    repos.Gift,
		limiter:     limiter,
		cache:       cache,
		cfg:         cfg,
		log:         log,
	}
}

// PublicListEntry is one row of the public directory.
type PublicListEntry struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// GetByUsername resolves a public username to its profile with gifts loaded,
// newest gift first. Guard order matches the caller contract: limiter, then
// cache, then the read.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	if !s.limiter.Allow("load_profile", s.cfg.PublicReadMax, s.cfg.PublicReadWindow) {
		return nil, ErrTooManyRequests
	}

	cacheKey := "gift_page:" + username
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*domain.UserProfile), nil
	}

	reservation, err := s.profileRepo.GetReservation(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	profile, err := s.profileRepo.GetByUID(ctx, reservation.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	gifts, err := s.giftRepo.ListByProfile(ctx, profile.UID)
	if err != nil {
		return nil, err
	}
	profile.Gifts = make([]domain.Gift, 0, len(gifts))
	for _, gift := range gifts {
		profile.Gifts = append(profile.Gifts, *gift)
	}

	s.cache.Set(cacheKey, profile, s.cfg.PublicCacheTTL)
	return profile, nil
}

// ListPublic returns the directory of public lists.
func (s *ProfileService) ListPublic(ctx context.Context) ([]PublicListEntry, error) {
	if !s.limiter.Allow("load_public_lists", s.cfg.PublicReadMax, s.cfg.PublicReadWindow) {
		return nil, ErrTooManyRequests
	}

	if cached, ok := s.cache.Get("public_lists"); ok {
		return cached.([]PublicListEntry), nil
	}

	profiles, err := s.profileRepo.ListPublic(ctx, publicListLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]PublicListEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, PublicListEntry{
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			Bio:          p.Bio,
			ProfileImage: p.ProfileImage,
		})
	}

	s.cache.Set("public_lists", entries, s.cfg.PublicCacheTTL)
	return entries, nil
}

// UpdateProfile merges the partial update into the stored profile, stamps
// UpdatedAt and writes the full merged record back. Username never changes.
func (s *ProfileService) UpdateProfile(ctx context.Context, uid uuid.UUID, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	if update.DisplayName != nil {
		if err := domain.ValidateDisplayName(*update.DisplayName); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	profile.Apply(update)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	// Cached public pages are stale now
	s.cache.Clear()
	return profile, nil
}
