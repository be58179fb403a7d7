package repository

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
)

func TestMemoryItemRepositoryAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()

	first := &entity.Item{Title: "Acne Studios Leather Jacket", SellerID: "u1"}
	second := &entity.Item{Title: "Zimmermann Silk Dress", SellerID: "u1"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, entity.ItemID("1"), first.ID)
	assert.Equal(t, entity.ItemID("2"), second.ID)

	got, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Zimmermann Silk Dress", got.Title)

	// returned copies do not alias stored records
	got.Title = "changed"
	again, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Zimmermann Silk Dress", again.Title)

	_, err = repo.GetByID(ctx, "3")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestMemoryItemRepositoryListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()
	seed := []*entity.Item{
		{Title: "Ivory Bridal Lehenga", Brand: "Sabyasachi", Category: "lehenga", Type: entity.ModeBoth, SellerID: "u1"},
		{Title: "Organza Saree", Brand: "Manish Malhotra", Category: "saree", Type: entity.ModeSale, SellerID: "u2"},
		{Title: "Velvet Gown", Brand: "Gaurav Gupta", Category: "gown", Type: entity.ModeRent, SellerID: "u1"},
	}
	for _, item := range seed {
		require.NoError(t, repo.Create(ctx, item))
	}

	items, total, err := repo.List(ctx, entity.ItemQuery{SellerID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, _, err = repo.List(ctx, entity.ItemQuery{Search: "SABYA"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ivory Bridal Lehenga", items[0].Title)

	items, total, err = repo.List(ctx, entity.ItemQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Velvet Gown", items[0].Title)

	items, total, err = repo.List(ctx, entity.ItemQuery{Category: "dress"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
}

func TestMemoryItemRepositoryHugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItemRepository()
	require.NoError(t, repo.Create(ctx, &entity.Item{Title: "Velvet Gown", SellerID: "u1"}))

	items, total, err := repo.List(ctx, entity.ItemQuery{Page: math.MaxInt / 10, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(1), total)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "Alex@Example.com"}))
	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "alex@example.com"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	user, err := repo.GetByEmail(ctx, "ALEX@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.GetByID(ctx, "u9")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestMemoryUserRepositoryAllocatesFreeIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "alex@example.com"}))
	priya := &entity.User{Email: "priya@example.com"}
	require.NoError(t, repo.Create(ctx, priya))
	assert.Equal(t, "u2", priya.ID)

	dup := &entity.User{Email: "priya@example.com"}
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Empty(t, dup.ID)
}

func TestMemoryOrderRepositoryListsBothSides(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "o1", BuyerID: "u2", SellerID: "u1"}))
	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "o2", BuyerID: "u1", SellerID: "u3"}))
	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "o3", BuyerID: "u2", SellerID: "u3"}))

	orders, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)

	assert.Error(t, repo.Create(ctx, &entity.Order{}))
}
