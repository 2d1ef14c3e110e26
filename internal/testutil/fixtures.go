package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email       string
	password    string
	username    string
	displayName string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:       fmt.Sprintf("test_%s@example.com", suffix),
		password:    "testpassword123",
		username:    fmt.Sprintf("testuser_%s", suffix),
		displayName: "Test User",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// Build writes the identity, profile and reservation through the repository
// and returns the user with the raw password.
func (b *UserBuilder) Build(t *testing.T, repos *repository.Repositories) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		DisplayName:  b.displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.UserProfile{
		UID:         user.ID,
		Username:    b.username,
		DisplayName: b.displayName,
		Email:       b.email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	reservation := &domain.UsernameReservation{
		Username:  b.username,
		UID:       user.ID,
		CreatedAt: now,
	}

	if err := repos.User.CreateWithProfile(context.Background(), user, profile, reservation); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	Profile      *domain.UserProfile `json:"profile"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via the API and returns the decoded
// auth response including the access token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) *AuthResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":       b.email,
		"password":    b.password,
		"username":    b.username,
		"displayName": b.displayName,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("registration failed with status %d", resp.StatusCode)
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}
	return &result
}

// GiftBuilder creates test gifts
type GiftBuilder struct {
	ownerUID    uuid.UUID
	name        string
	price       float64
	createdAt   time.Time
	isPurchased bool
}

func NewGiftBuilder(ownerUID uuid.UUID) *GiftBuilder {
	return &GiftBuilder{
		ownerUID:  ownerUID,
		name:      "Test Gift",
		price:     10.0,
		createdAt: time.Now(),
	}
}

func (b *GiftBuilder) WithName(name string) *GiftBuilder {
	b.name = name
	return b
}

func (b *GiftBuilder) WithPrice(price float64) *GiftBuilder {
	b.price = price
	return b
}

func (b *GiftBuilder) WithCreatedAt(at time.Time) *GiftBuilder {
	b.createdAt = at
	return b
}

func (b *GiftBuilder) WithPurchased(purchased bool) *GiftBuilder {
	b.isPurchased = purchased
	return b
}

func (b *GiftBuilder) Build(t *testing.T, repos *repository.Repositories) *domain.Gift {
	t.Helper()

	gift := &domain.Gift{
		ID:          domain.NewGiftID(),
		ProfileUID:  b.ownerUID,
		Name:        b.name,
		Price:       b.price,
		IsPurchased: b.isPurchased,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.createdAt,
	}

	if err := repos.Gift.Create(context.Background(), gift); err != nil {
		t.Fatalf("failed to create gift: %v", err)
	}
	return gift
}
