package repository

import (
	"context"
	"strconv"
	"sync"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

type memoryItemRepository struct {
	mu     sync.RWMutex
	items  []*entity.Item
	byID   map[entity.ItemID]*entity.Item
	nextID int64
}

// NewMemoryItemRepository keeps items in process. IDs are sequential integers, as the
// marketplace's own item table issues them.
func NewMemoryItemRepository() repository.ItemRepository {
	return &memoryItemRepository{
		byID: make(map[entity.ItemID]*entity.Item),
	}
}

func (r *memoryItemRepository) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		r.nextID++
		item.ID = entity.ItemID(strconv.FormatInt(r.nextID, 10))
	}
	if _, exists := r.byID[item.ID]; exists {
		return errors.Conflict("Item already exists")
	}

	stored := *item
	r.items = append(r.items, &stored)
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryItemRepository) GetByID(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *memoryItemRepository) List(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*entity.Item{}
	for _, item := range r.items {
		if matchesItemQuery(item, query) {
			copied := *item
			matched = append(matched, &copied)
		}
	}

	start, end := pageWindow(len(matched), query.Page, query.Limit)
	return matched[start:end], int64(len(matched)), nil
}
