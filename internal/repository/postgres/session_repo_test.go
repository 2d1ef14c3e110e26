package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/repository/postgres"
	"github.com/mari/gift-list-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("create and fetch by user", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, repos)
		session := &domain.UserSession{
			ID:               uuid.New(),
			UserID:           user.ID,
			RefreshTokenHash: "hash",
			ExpiresAt:        time.Now().Add(time.Hour),
			CreatedAt:        time.Now(),
		}
		require.NoError(t, repos.Session.Create(ctx, session))

		got, err := repos.Session.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
	})

	t.Run("delete by user removes all sessions", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, repos)
		for i := 0; i < 2; i++ {
			session := &domain.UserSession{
				ID:               uuid.New(),
				UserID:           user.ID,
				RefreshTokenHash: "hash",
				ExpiresAt:        time.Now().Add(time.Hour),
				CreatedAt:        time.Now(),
			}
			require.NoError(t, repos.Session.Create(ctx, session))
		}

		require.NoError(t, repos.Session.DeleteByUserID(ctx, user.ID))

		_, err := repos.Session.GetByUserID(ctx, user.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
