package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/config"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyRequests    = errors.New("too many requests, try again later")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	limiter     *ratelimit.Limiter
	cfg         *config.Config
	log         *logrus.Logger
}

func NewAuthService(repos *repository.Repositories, limiter *ratelimit.Limiter, cfg *config.Config, log *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:    repos.User,
		sessionRepo: repos.Session,
		profileRepo: repos.Profile,
		limiter:     limiter,
		cfg:         cfg,
		log:         log,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         *domain.User
	Profile      *domain.UserProfile
	AccessToken  string
	RefreshToken string
}

// Session is the resolved state for a request: who is logged in and their
// profile. Profile may be nil when the record is missing; resolution always
// attempts the profile fetch before returning.
type Session struct {
	User    *domain.User
	Profile *domain.UserProfile
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput, meta domain.SessionMetadata) (*AuthResult, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	// Reservation lookup comes first: a taken username fails before any
	// identity record is created.
	_, err := s.profileRepo.GetReservation(ctx, input.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  input.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.UserProfile{
		UID:         user.ID,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	reservation := &domain.UsernameReservation{
		Username:  input.Username,
		UID:       user.ID,
		CreatedAt: now,
	}

	// Identity, profile and reservation are written together: all or none.
	if err := s.userRepo.CreateWithProfile(ctx, user, profile, reservation); err != nil {
		return nil, err
	}

	result, err := s.generateTokens(ctx, user, meta)
	if err != nil {
		return nil, err
	}
	result.Profile = profile
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput, meta domain.SessionMetadata) (*AuthResult, error) {
	if !s.limiter.Allow("login:"+input.Email, s.cfg.LoginMaxAttempts, s.cfg.LoginWindow) {
		return nil, ErrTooManyRequests
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result, err := s.generateTokens(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	// Profile is fetched as part of establishing the session; a missing
	// record leaves it nil rather than failing the login.
	profile, err := s.profileRepo.GetByUID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	result.Profile = profile
	return result, nil
}

// Logout deletes all session rows for the user. Any token presented
// afterwards fails resolution, even if the JWT itself has not expired, so an
// in-flight request cannot resurrect the cleared session.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

// ResolveSession turns a bearer token into the current session. Every request
// re-resolves; nothing is cached between requests.
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	userIDStr, ok := (*claims)["sub"].(string)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	// The token is only as alive as its session row.
	if _, err := s.sessionRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	profile, err := s.profileRepo.GetByUID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &Session{User: user, Profile: profile}, nil
}

func (s *AuthService) generateTokens(ctx context.Context, user *domain.User, meta domain.SessionMetadata) (*AuthResult, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	hashedRefresh, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal session metadata: %w", err)
	}

	// One live session per user
	_ = s.sessionRepo.DeleteByUserID(ctx, user.ID)

	session := &domain.UserSession{
		ID:               uuid.New(),
		UserID:           user.ID,
		RefreshTokenHash: string(hashedRefresh),
		Metadata:         metadata,
		ExpiresAt:        time.Now().Add(7 * 24 * time.Hour),
		CreatedAt:        time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"eml": user.Email,
		"exp": time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

func validateRegistration(input RegisterInput) error {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return err
	}
	if err := domain.ValidateUsername(input.Username); err != nil {
		return err
	}
	return domain.ValidateDisplayName(input.DisplayName)
}
