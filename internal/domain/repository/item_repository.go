package repository

import (
	"context"

	"wardrobe101/internal/domain/entity"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id entity.ItemID) (*entity.Item, error)
	// List returns items matching query in creation order with the total before paging.
	List(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, int64, error)
}
