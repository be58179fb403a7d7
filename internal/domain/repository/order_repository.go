package repository

import (
	"context"

	"wardrobe101/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
}
