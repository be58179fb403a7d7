package usecase

import (
	"context"
	"time"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

const maxItemsPerPage = 100

// InventoryUseCase serves the dev API's item catalogue.
type InventoryUseCase struct {
	itemRepo repository.ItemRepository
}

func NewInventoryUseCase(itemRepo repository.ItemRepository) *InventoryUseCase {
	return &InventoryUseCase{itemRepo: itemRepo}
}

// CreateItem stores a listing for seller. The seller always comes from the token,
// never from the body.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, seller *entity.User, payload entity.ItemPayload) (*entity.Item, error) {
	if !payload.Type.Valid() {
		return nil, errors.BadRequest("Invalid listing type", nil)
	}

	status := payload.Status
	if status == "" {
		status = entity.ItemStatusLive
	}

	item := &entity.Item{
		Title:       payload.Title,
		Category:    payload.Category,
		Brand:       payload.Brand,
		Size:        payload.Size,
		Condition:   payload.Condition,
		Type:        payload.Type,
		SalePrice:   payload.SalePrice,
		RentPrice:   payload.RentPrice,
		Deposit:     payload.Deposit,
		Image:       payload.Image,
		Status:      status,
		Verified:    payload.Verified,
		SellerID:    seller.ID,
		Description: payload.Description,
		CreatedAt:   time.Now(),
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, errors.Internal("Failed to create item", err)
	}

	logger.Info("Item %s created by %s with status %s", item.ID, seller.ID, item.Status)
	return item, nil
}

func (uc *InventoryUseCase) GetItem(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Item", err)
	}
	return item, nil
}

func (uc *InventoryUseCase) ListItems(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, int64, error) {
	if query.Limit > maxItemsPerPage {
		query.Limit = maxItemsPerPage
	}
	if query.Type != "" && query.Type != FilterAll && !entity.ListingMode(query.Type).Valid() {
		return nil, 0, errors.BadRequest("Invalid listing type", nil)
	}
	return uc.itemRepo.List(ctx, query)
}

// SeedDemoItems adds the demo catalogue when the store is empty.
func (uc *InventoryUseCase) SeedDemoItems(ctx context.Context, sellerID string) (int, error) {
	_, total, err := uc.itemRepo.List(ctx, entity.ItemQuery{Page: 1, Limit: 1})
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	seeded := 0
	for _, item := range demoItems(sellerID) {
		if err := uc.itemRepo.Create(ctx, item); err != nil {
			return seeded, errors.Internal("Failed to seed demo items", err)
		}
		seeded++
	}
	logger.Info("Seeded %d demo items for %s", seeded, sellerID)
	return seeded, nil
}

func demoItems(sellerID string) []*entity.Item {
	now := time.Now()
	return []*entity.Item{
		{
			Title:     "Acne Studios Leather Jacket",
			Category:  "Jackets",
			Brand:     "Acne Studios",
			Size:      "M",
			Condition: "A",
			Type:      entity.ModeBoth,
			SalePrice: entity.Float(28500),
			RentPrice: entity.Float(1500),
			Deposit:   entity.Float(8000),
			Image:     "https://images.unsplash.com/photo-1551028917-a48010bd8f3b?q=80&w=1000",
			Status:    entity.ItemStatusLive,
			Verified:  true,
			SellerID:  sellerID,
			CreatedAt: now,
		},
		{
			Title:     "Zimmermann Silk Dress",
			Category:  "Dresses",
			Brand:     "Zimmermann",
			Size:      "S",
			Condition: "A",
			Type:      entity.ModeRent,
			RentPrice: entity.Float(3200),
			Deposit:   entity.Float(10000),
			Image:     "https://images.unsplash.com/photo-1568252542512-9fe8fe9c87bb?q=80&w=1000",
			Status:    entity.ItemStatusLive,
			Verified:  true,
			SellerID:  sellerID,
			CreatedAt: now.Add(time.Second),
		},
	}
}
