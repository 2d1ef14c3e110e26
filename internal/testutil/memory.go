package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/repository"
	"gorm.io/gorm"
)

// NewMemoryRepositories returns fully in-memory repository implementations.
// They honor the same not-found contract as the postgres ones
// (gorm.ErrRecordNotFound) so services behave identically on either.
func NewMemoryRepositories() *repository.Repositories {
	store := &memoryStore{
		users:        make(map[uuid.UUID]domain.User),
		usersByEmail: make(map[string]uuid.UUID),
		sessions:     make(map[uuid.UUID]domain.UserSession),
		profiles:     make(map[uuid.UUID]domain.UserProfile),
		reservations: make(map[string]domain.UsernameReservation),
		gifts:        make(map[string]domain.Gift),
	}
	return &repository.Repositories{
		User:    &memoryUserRepo{store},
		Session: &memorySessionRepo{store},
		Profile: &memoryProfileRepo{store},
		Gift:    &memoryGiftRepo{store},
	}
}

type memoryStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]domain.User
	usersByEmail map[string]uuid.UUID
	sessions     map[uuid.UUID]domain.UserSession // keyed by session ID
	profiles     map[uuid.UUID]domain.UserProfile
	reservations map[string]domain.UsernameReservation
	gifts        map[string]domain.Gift
}

type memoryUserRepo struct{ s *memoryStore }

func (r *memoryUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile, reservation *domain.UsernameReservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.usersByEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	if _, exists := r.s.reservations[reservation.Username]; exists {
		return gorm.ErrDuplicatedKey
	}

	r.s.users[user.ID] = *user
	r.s.usersByEmail[user.Email] = user.ID
	r.s.profiles[profile.UID] = *profile
	r.s.reservations[reservation.Username] = *reservation
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user := r.s.users[id]
	return &user, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.users[user.ID] = *user
	return nil
}

type memorySessionRepo struct{ s *memoryStore }

func (r *memorySessionRepo) Create(ctx context.Context, session *domain.UserSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, session := range r.s.sessions {
		if session.UserID == userID {
			found := session
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memorySessionRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, session := range r.s.sessions {
		if session.UserID == userID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

type memoryProfileRepo struct{ s *memoryStore }

func (r *memoryProfileRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile, ok := r.s.profiles[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (r *memoryProfileRepo) GetReservation(ctx context.Context, username string) (*domain.UsernameReservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &reservation, nil
}

func (r *memoryProfileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.profiles[profile.UID] = *profile
	return nil
}

func (r *memoryProfileRepo) ListPublic(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profiles := make([]*domain.UserProfile, 0, len(r.s.profiles))
	for _, profile := range r.s.profiles {
		p := profile
		profiles = append(profiles, &p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	if len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles, nil
}

type memoryGiftRepo struct{ s *memoryStore }

func (r *memoryGiftRepo) Create(ctx context.Context, gift *domain.Gift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.gifts[gift.ID] = *gift
	return nil
}

func (r *memoryGiftRepo) GetByID(ctx context.Context, id string) (*domain.Gift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	gift, ok := r.s.gifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &gift, nil
}

func (r *memoryGiftRepo) ListByProfile(ctx context.Context, profileUID uuid.UUID) ([]*domain.Gift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	gifts := make([]*domain.Gift, 0)
	for _, gift := range r.s.gifts {
		if gift.ProfileUID == profileUID {
			g := gift
			gifts = append(gifts, &g)
		}
	}
	sort.Slice(gifts, func(i, j int) bool {
		return gifts[i].CreatedAt.After(gifts[j].CreatedAt)
	})
	return gifts, nil
}

func (r *memoryGiftRepo) Update(ctx context.Context, gift *domain.Gift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.gifts[gift.ID] = *gift
	return nil
}

func (r *memoryGiftRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.gifts, id)
	return nil
}
