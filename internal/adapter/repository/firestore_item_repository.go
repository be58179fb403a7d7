package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

const itemsCollection = "items"

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	// Generate ID if not provided
	if item.ID == "" {
		doc := r.client.Collection(itemsCollection).NewDoc()
		item.ID = entity.ItemID(doc.ID)
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(itemsCollection).Doc(string(item.ID)).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create item", err)
	}

	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	doc, err := r.client.Collection(itemsCollection).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}

	return &item, nil
}

func (r *firestoreItemRepository) List(ctx context.Context, q entity.ItemQuery) ([]*entity.Item, int64, error) {
	query := r.client.Collection(itemsCollection).Query

	// Equality filters run in Firestore, the title/brand search runs here
	if q.SellerID != "" {
		query = query.Where("sellerId", "==", q.SellerID)
	}
	if q.Category != "" && q.Category != filterAll {
		query = query.Where("category", "==", q.Category)
	}
	if q.Type != "" && q.Type != filterAll {
		query = query.Where("type", "==", q.Type)
	}
	if q.Size != "" && q.Size != filterAll {
		query = query.Where("size", "==", q.Size)
	}
	query = query.OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	items := []*entity.Item{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate items", err)
		}
		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse item data", err)
		}
		if item.ID == "" {
			item.ID = entity.ItemID(doc.Ref.ID)
		}
		if matchesItemQuery(&item, q) {
			items = append(items, &item)
		}
	}

	start, end := pageWindow(len(items), q.Page, q.Limit)
	return items[start:end], int64(len(items)), nil
}
