package service

import (
	"github.com/mari/gift-list-website/internal/config"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth    *AuthService
	Profile *ProfileService
	Gift    *GiftService
}

// NewServices wires the service layer. Limiter and cache are shared: the
// same guard protects login attempts and the public read paths, and gift
// mutations invalidate the cached public pages.
func NewServices(repos *repository.Repositories, limiter *ratelimit.Limiter, cache *ratelimit.Cache, cfg *config.Config, log *logrus.Logger) *Services {
	return &Services{
		Auth:    NewAuthService(repos, limiter, cfg, log),
		Profile: NewProfileService(repos, limiter, cache, cfg, log),
		Gift:    NewGiftService(repos, cache, log),
	}
}
