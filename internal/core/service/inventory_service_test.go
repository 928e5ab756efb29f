package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/infrastructure/db/memory"
)

func ptr[T any](v T) *T { return &v }

func newInventory(t *testing.T) (*InventoryService, *memory.ListingRepository) {
	t.Helper()
	repo := memory.NewListingRepository()
	svc := NewInventoryService(repo, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func basketDraft() domain.ListingDraft {
	return domain.ListingDraft{
		Title:      "Ilala Palm Basket",
		Price:      280,
		Category:   "Home Decor",
		OwnerID:    "seller1",
		StockCount: ptr(15),
	}
}

func TestInventoryService_AddThenGet(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)
	assert.Equal(t, domain.PlaceholderImage, added.ImageRef)
	assert.Equal(t, svc.now(), added.CreatedAt)

	got, err := svc.GetByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestInventoryService_AddAssignsDistinctIDs(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		l, err := svc.Add(ctx, basketDraft())
		require.NoError(t, err)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestInventoryService_AddRedrawsCollidingID(t *testing.T) {
	svc, repo := newInventory(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &domain.Listing{ID: "taken", Title: "Existing"}))

	ids := []string{"taken", "taken", "fresh"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	l, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)
	assert.Equal(t, "fresh", l.ID)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 2, n)
}

func TestInventoryService_AddGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, repo := newInventory(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &domain.Listing{ID: "taken"}))
	svc.newID = func() string { return "taken" }

	_, err := svc.Add(ctx, basketDraft())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInventoryService_UpdateChangesOnlyPatchedFields(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()
	added, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, added.ID, domain.ListingPatch{Price: ptr(300.0)})
	require.NoError(t, err)

	want := *added
	want.Price = 300
	assert.Equal(t, &want, updated)

	got, _ := svc.GetByID(ctx, added.ID)
	assert.Equal(t, &want, got)
}

func TestInventoryService_UnknownIDIsNotFound(t *testing.T) {
	svc, repo := newInventory(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing", domain.ListingPatch{Price: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	err = svc.Remove(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestInventoryService_Remove(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()
	a, _ := svc.Add(ctx, basketDraft())
	b, _ := svc.Add(ctx, basketDraft())

	require.NoError(t, svc.Remove(ctx, a.ID))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestInventoryService_OwnedMutations(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()
	l, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)

	_, err = svc.UpdateOwned(ctx, "seller2", l.ID, domain.ListingPatch{Title: ptr("Mine now")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.RemoveOwned(ctx, "seller2", l.ID), domain.ErrForbidden)

	_, err = svc.UpdateOwned(ctx, "seller1", "missing", domain.ListingPatch{})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	updated, err := svc.UpdateOwned(ctx, "seller1", l.ID, domain.ListingPatch{Title: ptr("Large Basket")})
	require.NoError(t, err)
	assert.Equal(t, "Large Basket", updated.Title)
	assert.Equal(t, "seller1", updated.OwnerID)

	require.NoError(t, svc.RemoveOwned(ctx, "seller1", l.ID))
}

func TestInventoryService_ListByOwnerKeepsInsertionOrder(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()

	var want []string
	for i := 0; i < 4; i++ {
		d := basketDraft()
		d.Title = fmt.Sprintf("Basket %d", i)
		if i%2 == 1 {
			d.OwnerID = "seller2"
		}
		l, err := svc.Add(ctx, d)
		require.NoError(t, err)
		if d.OwnerID == "seller1" {
			want = append(want, l.ID)
		}
	}

	mine, err := svc.ListByOwner(ctx, "seller1")
	require.NoError(t, err)
	var got []string
	for _, l := range mine {
		got = append(got, l.ID)
	}
	assert.Equal(t, want, got)

	none, err := svc.ListByOwner(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInventoryService_NewSellerHasNoListings(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()
	_, err := svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)

	session, err := newSessionService(t, newStubKV(), NewMockAuthenticator()).Register(ctx, registerSeller())
	require.NoError(t, err)

	listings, err := svc.ListByOwner(ctx, session.Identity.ID)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestInventoryService_SeedIsIdempotent(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, _ := svc.ListAll(ctx)
	require.Len(t, all, 6)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "Traditional Shweshwe Dress", all[1].Title)
}

func TestInventoryService_EmptyPatchLeavesListingUntouched(t *testing.T) {
	svc, _ := newInventory(t)
	ctx := context.Background()
	added, err := svc.Add(ctx, basketDraft())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	got, err := svc.Update(ctx, added.ID, domain.ListingPatch{})
	require.NoError(t, err)
	assert.Equal(t, added, got)

	_, err = svc.Update(ctx, "missing", domain.ListingPatch{})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
