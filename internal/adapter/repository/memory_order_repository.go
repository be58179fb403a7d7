package repository

import (
	"context"
	"sync"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders []*entity.Order
}

func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		return errors.BadRequest("Order ID is required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *order
	r.orders = append(r.orders, &stored)
	return nil
}

// ListByUser returns orders where userID is buyer or seller, oldest first.
func (r *memoryOrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []*entity.Order{}
	for _, order := range r.orders {
		if order.BuyerID == userID || order.SellerID == userID {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}
