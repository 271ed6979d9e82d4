package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

func TestProjectSaveAssignsID(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	owner := newTestAccount(t, db, "alice")

	saved, err := store.Save(ctx, owner, models.NewProject("sprite", 8, 8))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := store.Get(ctx, owner, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "sprite", got.Name)
	require.Equal(t, 8, got.Width)
	require.Len(t, got.Frames, 1)
	require.Len(t, got.Frames[0].Layers, 1)
}

func TestProjectRoundTripPreservesPixels(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	owner := newTestAccount(t, db, "alice")

	p := models.NewProject("sprite", 4, 4)
	p.Frames[0].Layers[0].Pixels[2][3] = models.Pixel{Color: "#ff0000"}
	p.Frames[0].Layers[0].Opacity = 0.5

	saved, err := store.Save(ctx, owner, p)
	require.NoError(t, err)

	got, err := store.Get(ctx, owner, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "#ff0000", got.Frames[0].Layers[0].Pixels[2][3].Color)
	require.Equal(t, models.Transparent, got.Frames[0].Layers[0].Pixels[0][0].Color)
	require.Equal(t, 0.5, got.Frames[0].Layers[0].Opacity)
}

func TestProjectSaveUpserts(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	owner := newTestAccount(t, db, "alice")

	saved, err := store.Save(ctx, owner, models.NewProject("before", 4, 4))
	require.NoError(t, err)

	saved.Name = "after"
	again, err := store.Save(ctx, owner, saved)
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)

	got, err := store.Get(ctx, owner, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "after", got.Name)

	summaries, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
}

func TestProjectSaveNeverAdoptsAnotherAccountsID(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	alice := newTestAccount(t, db, "alice")
	mallory := newTestAccount(t, db, "mallory")

	victim, err := store.Save(ctx, alice, models.NewProject("original", 8, 8))
	require.NoError(t, err)

	forged := models.NewProject("forged", 8, 8)
	forged.ID = victim.ID
	hijack, err := store.Save(ctx, mallory, forged)
	require.NoError(t, err)
	require.NotEqual(t, victim.ID, hijack.ID)

	got, err := store.Get(ctx, alice, victim.ID)
	require.NoError(t, err)
	require.Equal(t, "original", got.Name)

	aliceList, err := store.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	require.Equal(t, victim.ID, aliceList[0].ID)

	malloryList, err := store.List(ctx, mallory)
	require.NoError(t, err)
	require.Len(t, malloryList, 1)
	require.Equal(t, hijack.ID, malloryList[0].ID)
}

func TestProjectGetScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	alice := newTestAccount(t, db, "alice")
	bob := newTestAccount(t, db, "bob")

	saved, err := store.Save(ctx, alice, models.NewProject("private", 4, 4))
	require.NoError(t, err)

	_, err = store.Get(ctx, bob, saved.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Get(ctx, alice, "nonexistent")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProjectListSummaries(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	owner := newTestAccount(t, db, "alice")

	_, err := store.Save(ctx, owner, models.NewProject("one", 8, 8))
	require.NoError(t, err)
	_, err = store.Save(ctx, owner, models.NewProject("two", 16, 16))
	require.NoError(t, err)

	summaries, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, sum := range summaries {
		require.NotEmpty(t, sum.ID)
		require.Contains(t, []string{"one", "two"}, sum.Name)
	}
}

func TestProjectDelete(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	owner := newTestAccount(t, db, "alice")

	saved, err := store.Save(ctx, owner, models.NewProject("gone", 4, 4))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, owner, saved.ID))
	_, err = store.Get(ctx, owner, saved.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Absent and repeated deletes are silent no-ops.
	require.NoError(t, store.Delete(ctx, owner, saved.ID))
	require.NoError(t, store.Delete(ctx, owner, "nonexistent"))
}

func TestProjectDeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()
	alice := newTestAccount(t, db, "alice")
	bob := newTestAccount(t, db, "bob")

	saved, err := store.Save(ctx, alice, models.NewProject("mine", 4, 4))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, bob, saved.ID))
	got, err := store.Get(ctx, alice, saved.ID)
	require.NoError(t, err, "someone else's delete does not touch the project")
	require.Equal(t, "mine", got.Name)
}
