package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	acct, err := store.CreateAccount(ctx, "alice", "hash-1")
	require.NoError(t, err)
	require.NotEmpty(t, acct.ID)
	require.Equal(t, "alice", acct.Username)
	require.NotZero(t, acct.CreatedAt)
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	_, err := store.CreateAccount(ctx, "alice", "hash-1")
	require.NoError(t, err)

	_, err = store.CreateAccount(ctx, "alice", "hash-2")
	require.ErrorIs(t, err, storage.ErrUsernameTaken)
}

func TestGetByUsernameAndID(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	created, err := store.CreateAccount(ctx, "alice", "hash-1")
	require.NoError(t, err)

	byName, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
	require.Equal(t, "hash-1", byName.PasswordHash)

	byID, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	_, err = store.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetByID(ctx, "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
