package users_test

import (
	"context"
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *users.MemoryStore {
	t.Helper()

	store, err := users.NewMemoryStore(
		users.WithFixtureFS(users.FixturesFS, users.FixturesPath),
	)
	require.NoError(t, err)
	return store
}

func TestMemoryStore_Fixtures(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	cloe, err := store.GetByID(ctx, "USER-CLOE")
	require.NoError(t, err)
	require.NotNil(t, cloe)
	assert.Equal(t, "cloe@example.com", cloe.Email)
	assert.Equal(t, "GROUP-SHOESTRING-LTD", cloe.OrganizationID)
	assert.False(t, cloe.IsAdmin)
}

func TestMemoryStore_Reads(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	t.Run("absent id reads as nil, not an error", func(t *testing.T) {
		user, err := store.GetByID(ctx, "no-such-id")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByID is idempotent", func(t *testing.T) {
		first, err := store.GetByID(ctx, "USER-CLOE")
		require.NoError(t, err)
		second, err := store.GetByID(ctx, "USER-CLOE")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("GetByIDs preserves input order and skips unknowns", func(t *testing.T) {
		got, err := store.GetByIDs(ctx, []string{"USER-SAM", "no-such-id", "USER-CLOE"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "USER-SAM", got[0].ID)
		assert.Equal(t, "USER-CLOE", got[1].ID)
	})

	t.Run("GetByIDs keeps duplicated ids duplicated", func(t *testing.T) {
		got, err := store.GetByIDs(ctx, []string{"USER-CLOE", "USER-CLOE"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("auth record lookup is case insensitive on email", func(t *testing.T) {
		record, err := store.GetAuthRecordByEmail(ctx, "CLOE@example.com")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "USER-CLOE", record.ID)
		assert.NotEmpty(t, record.PasswordHash)
	})

	t.Run("absent email reads as nil", func(t *testing.T) {
		record, err := store.GetAuthRecordByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, record)
	})
}

func TestMemoryStore_FindByAttributes(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	t.Run("filters by organization", func(t *testing.T) {
		got, err := store.FindByAttributes(ctx, users.Filter{
			"organization_id": "GROUP-SHOESTRING-LTD",
		})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		got, err := store.FindByAttributes(ctx, users.Filter{})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("combines filter attributes", func(t *testing.T) {
		got, err := store.FindByAttributes(ctx, users.Filter{
			"organization_id": "GROUP-SHOESTRING-LTD",
			"is_admin":        true,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "USER-ADA", got[0].ID)
	})

	t.Run("unknown attribute is rejected", func(t *testing.T) {
		got, err := store.FindByAttributes(ctx, users.Filter{
			"favorite_color": "green",
		})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, users.ErrInvalidFilter)
	})

	t.Run("no match yields an empty slice", func(t *testing.T) {
		got, err := store.FindByAttributes(ctx, users.Filter{
			"organization_id": "GROUP-NOBODY",
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMemoryStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an identifier", func(t *testing.T) {
		store := seedStore(t)

		user, err := store.Create(ctx, users.NewUser{
			Email:          "nina@example.com",
			FirstName:      "Nina",
			LastName:       "New",
			OrganizationID: "GROUP-ACME-INC",
			PasswordHash:   testPasswordHash,
		})
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEmpty(t, user.ID)

		found, err := store.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "nina@example.com", found.Email)
	})

	t.Run("uses the configured id generator", func(t *testing.T) {
		store, err := users.NewMemoryStore(
			users.WithIDGenerator(func(email string) (string, error) {
				return "id-for-" + email, nil
			}),
		)
		require.NoError(t, err)

		user, err := store.Create(ctx, users.NewUser{Email: "nina@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "id-for-nina@example.com", user.ID)
	})

	t.Run("falls back to random ids on generator collision", func(t *testing.T) {
		store, err := users.NewMemoryStore(
			users.WithIDGenerator(func(string) (string, error) {
				return "always-the-same", nil
			}),
		)
		require.NoError(t, err)

		first, err := store.Create(ctx, users.NewUser{Email: "a@example.com"})
		require.NoError(t, err)
		second, err := store.Create(ctx, users.NewUser{Email: "b@example.com"})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("rejects duplicate email and leaves the store unchanged", func(t *testing.T) {
		store := seedStore(t)

		before, err := store.FindAll(ctx)
		require.NoError(t, err)

		user, err := store.Create(ctx, users.NewUser{Email: "cloe@example.com"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, users.ErrDuplicateEmail)

		after, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("duplicate detection ignores case", func(t *testing.T) {
		store := seedStore(t)

		_, err := store.Create(ctx, users.NewUser{Email: "CLOE@EXAMPLE.COM"})
		assert.ErrorIs(t, err, users.ErrDuplicateEmail)
	})
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces directory fields and keeps the password hash", func(t *testing.T) {
		store := seedStore(t)

		updated, err := store.Update(ctx, "USER-CLOE", users.NewUser{
			Email:          "cloe@example.com",
			FirstName:      "Chloe",
			LastName:       "Chief",
			OrganizationID: "GROUP-SHOESTRING-LTD",
			IsAdmin:        true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Chloe", updated.FirstName)
		assert.True(t, updated.IsAdmin)

		record, err := store.GetAuthRecordByEmail(ctx, "cloe@example.com")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, testPasswordHash, record.PasswordHash)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		store := seedStore(t)

		updated, err := store.Update(ctx, "no-such-id", users.NewUser{Email: "x@example.com"})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("cannot move onto a taken email", func(t *testing.T) {
		store := seedStore(t)

		updated, err := store.Update(ctx, "USER-SAM", users.NewUser{
			Email: "cloe@example.com",
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, users.ErrDuplicateEmail)
	})

	t.Run("email change frees the old email", func(t *testing.T) {
		store := seedStore(t)

		_, err := store.Update(ctx, "USER-SAM", users.NewUser{
			Email:          "samuel@example.com",
			FirstName:      "Sam",
			LastName:       "Staff",
			OrganizationID: "GROUP-SHOESTRING-LTD",
		})
		require.NoError(t, err)

		created, err := store.Create(ctx, users.NewUser{Email: "sam@example.com"})
		require.NoError(t, err)
		assert.NotNil(t, created)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record and its email", func(t *testing.T) {
		store := seedStore(t)

		require.NoError(t, store.Delete(ctx, "USER-CLOE"))

		user, err := store.GetByID(ctx, "USER-CLOE")
		require.NoError(t, err)
		assert.Nil(t, user)

		record, err := store.GetAuthRecordByEmail(ctx, "cloe@example.com")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		store := seedStore(t)
		assert.ErrorIs(t, store.Delete(ctx, "no-such-id"), users.ErrUserNotFound)
	})

	t.Run("delete is not idempotent", func(t *testing.T) {
		store := seedStore(t)

		require.NoError(t, store.Delete(ctx, "USER-SAM"))
		assert.ErrorIs(t, store.Delete(ctx, "USER-SAM"), users.ErrUserNotFound)
	})
}
