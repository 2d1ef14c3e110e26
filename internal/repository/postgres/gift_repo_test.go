package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/repository/postgres"
	"github.com/mari/gift-list-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGiftRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("lists gifts newest first", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, repos)
		base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
		testutil.NewGiftBuilder(user.ID).WithName("first").WithCreatedAt(base).Build(t, repos)
		testutil.NewGiftBuilder(user.ID).WithName("second").WithCreatedAt(base.Add(time.Minute)).Build(t, repos)
		testutil.NewGiftBuilder(user.ID).WithName("third").WithCreatedAt(base.Add(2 * time.Minute)).Build(t, repos)

		gifts, err := repos.Gift.ListByProfile(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, gifts, 3)
		assert.Equal(t, "third", gifts[0].Name)
		assert.Equal(t, "second", gifts[1].Name)
		assert.Equal(t, "first", gifts[2].Name)
	})

	t.Run("list is scoped to the owner", func(t *testing.T) {
		testDB.Truncate(t)

		alice, _ := testutil.NewUserBuilder().Build(t, repos)
		bob, _ := testutil.NewUserBuilder().Build(t, repos)
		testutil.NewGiftBuilder(alice.ID).WithName("alice's").Build(t, repos)
		testutil.NewGiftBuilder(bob.ID).WithName("bob's").Build(t, repos)

		gifts, err := repos.Gift.ListByProfile(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, gifts, 1)
		assert.Equal(t, "alice's", gifts[0].Name)
	})

	t.Run("update persists purchased fields", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, repos)
		gift := testutil.NewGiftBuilder(user.ID).Build(t, repos)

		purchasedAt := time.Now().Truncate(time.Millisecond)
		gift.IsPurchased = true
		gift.PurchasedBy = "Ana"
		gift.PurchasedAt = &purchasedAt
		require.NoError(t, repos.Gift.Update(ctx, gift))

		got, err := repos.Gift.GetByID(ctx, gift.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPurchased)
		assert.Equal(t, "Ana", got.PurchasedBy)
		require.NotNil(t, got.PurchasedAt)
	})

	t.Run("delete removes the gift", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, repos)
		gift := testutil.NewGiftBuilder(user.ID).Build(t, repos)

		require.NoError(t, repos.Gift.Delete(ctx, gift.ID))

		_, err := repos.Gift.GetByID(ctx, gift.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("get missing gift reports not found", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := repos.Gift.GetByID(ctx, domain.NewGiftID())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
