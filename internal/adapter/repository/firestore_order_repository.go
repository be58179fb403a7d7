package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

const ordersCollection = "orders"

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	// Generate ID if not provided
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(ordersCollection).Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

// ListByUser merges the orders where userID is buyer and where it is seller.
func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	seen := make(map[string]bool)
	orders := []*entity.Order{}

	for _, field := range []string{"buyerId", "sellerId"} {
		iter := r.client.Collection(ordersCollection).Where(field, "==", userID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, errors.Internal("Failed to iterate orders", err)
			}
			if seen[doc.Ref.ID] {
				continue
			}
			var order entity.Order
			if err := doc.DataTo(&order); err != nil {
				iter.Stop()
				return nil, errors.Internal("Failed to parse order data", err)
			}
			seen[doc.Ref.ID] = true
			orders = append(orders, &order)
		}
		iter.Stop()
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}
