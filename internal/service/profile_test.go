package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/mari/gift-list-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	svc     *service.ProfileService
	repos   *repository.Repositories
	limiter *ratelimit.Limiter
	cache   *ratelimit.Cache
}

func newProfileService(t *testing.T) *profileFixture {
	t.Helper()
	repos := testutil.NewMemoryRepositories()
	limiter := ratelimit.NewLimiter()
	cache := ratelimit.NewCache()
	svc := service.NewProfileService(repos, limiter, cache, testutil.TestConfig(), testutil.TestLogger())
	return &profileFixture{svc: svc, repos: repos, limiter: limiter, cache: cache}
}

func TestProfileService_GetByUsername(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, f.repos)
	base := time.Now().Add(-time.Hour)
	testutil.NewGiftBuilder(user.ID).WithName("oldest").WithCreatedAt(base).Build(t, f.repos)
	testutil.NewGiftBuilder(user.ID).WithName("newest").WithCreatedAt(base.Add(time.Minute)).Build(t, f.repos)

	profile, err := f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	require.Len(t, profile.Gifts, 2)
	assert.Equal(t, "newest", profile.Gifts[0].Name)
	assert.Equal(t, "oldest", profile.Gifts[1].Name)
}

func TestProfileService_GetByUsername_NotFound(t *testing.T) {
	f := newProfileService(t)

	_, err := f.svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileService_GetByUsername_ServesCachedPage(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, f.repos)

	profile, err := f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, profile.Gifts)

	// A write that bypasses the service leaves the cached page untouched
	testutil.NewGiftBuilder(user.ID).Build(t, f.repos)

	profile, err = f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, profile.Gifts)

	// Invalidation makes the next read hit the store again
	f.cache.Clear()
	profile, err = f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, profile.Gifts, 1)
}

func TestProfileService_GetByUsername_RateLimitedBeforeCache(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	cfg := testutil.TestConfig()
	cfg.PublicReadMax = 2
	limiter := ratelimit.NewLimiter()
	cache := ratelimit.NewCache()
	svc := service.NewProfileService(repos, limiter, cache, cfg, testutil.TestLogger())
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("alice").Build(t, repos)

	_, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	// The limiter fires before the cache is consulted, so even a cached page
	// is refused once the window is exhausted.
	_, err = svc.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrTooManyRequests)
}

func TestProfileService_ListPublic(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("alice").WithDisplayName("Alice A").Build(t, f.repos)
	testutil.NewUserBuilder().WithUsername("bob").WithDisplayName("Bob B").Build(t, f.repos)

	entries, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	usernames := []string{entries[0].Username, entries[1].Username}
	assert.Contains(t, usernames, "alice")
	assert.Contains(t, usernames, "bob")
}

func TestProfileService_UpdateProfile_MergesPartialUpdate(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("alice").
		WithDisplayName("Alice Original").
		Build(t, f.repos)

	before, err := f.repos.Profile.GetByUID(ctx, user.ID)
	require.NoError(t, err)

	bio := "gift lists for every occasion"
	updated, err := f.svc.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)

	// Untouched fields survive, only the bio changed
	assert.Equal(t, "Alice Original", updated.DisplayName)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, bio, updated.Bio)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))

	// The merged record was written back in full
	stored, err := f.repos.Profile.GetByUID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Original", stored.DisplayName)
	assert.Equal(t, bio, stored.Bio)
}

func TestProfileService_UpdateProfile_ValidatesDisplayName(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithDisplayName("Alice").Build(t, f.repos)

	short := "A"
	_, err := f.svc.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{DisplayName: &short})
	assert.ErrorIs(t, err, domain.ErrInvalidDisplayName)

	// The store kept the original
	stored, err := f.repos.Profile.GetByUID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.DisplayName)
}

func TestProfileService_UpdateProfile_InvalidatesCachedPages(t *testing.T) {
	f := newProfileService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("alice").WithDisplayName("Alice").Build(t, f.repos)

	profile, err := f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.DisplayName)

	name := "Alice Renamed"
	_, err = f.svc.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)

	profile, err = f.svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", profile.DisplayName)
}

func TestProfileService_UpdateProfile_UnknownUser(t *testing.T) {
	f := newProfileService(t)

	bio := "hello"
	_, err := f.svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
