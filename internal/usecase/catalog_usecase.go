package usecase

import (
	"context"
	"strings"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// FilterAll disables a category, type or size predicate.
const FilterAll = "all"

// PriceRange bounds are inclusive.
type PriceRange struct {
	Min float64
	Max float64
}

func (r *PriceRange) contains(price *float64) bool {
	if price == nil {
		return false
	}
	return *price >= r.Min && *price <= r.Max
}

// Filter is the browse view's predicate set. Empty strings behave like FilterAll and a nil
// Price applies no price constraint.
type Filter struct {
	Search   string
	Category string
	Type     string
	Size     string
	Price    *PriceRange
}

// Matches reports whether item passes every predicate of f.
func (f Filter) Matches(item *entity.Item) bool {
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		if !strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.Brand), search) {
			return false
		}
	}
	if !isAll(f.Category) && item.Category != f.Category {
		return false
	}
	if !isAll(f.Size) && item.Size != f.Size {
		return false
	}

	switch entity.ListingMode(strings.ToLower(f.Type)) {
	case entity.ModeSale:
		if !item.Type.OffersSale() || item.SalePrice == nil {
			return false
		}
		if f.Price != nil && !f.Price.contains(item.SalePrice) {
			return false
		}
	case entity.ModeRent:
		if !item.Type.OffersRent() || item.RentPrice == nil {
			return false
		}
		if f.Price != nil && !f.Price.contains(item.RentPrice) {
			return false
		}
	default:
		if f.Price != nil && !f.Price.contains(item.SalePrice) && !f.Price.contains(item.RentPrice) {
			return false
		}
	}
	return true
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// FilterItems keeps the items that match f, preserving order.
func FilterItems(items []*entity.Item, f Filter) []*entity.Item {
	filtered := make([]*entity.Item, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BrowseResult is the catalog view state after a fetch.
type BrowseResult struct {
	Items   []*entity.Item
	Loading bool
	Err     error
}

// ListingOverview splits one seller's listings for the My Listings view.
type ListingOverview struct {
	Current []*entity.Item
	Past    []*entity.Item
}

type CatalogUseCase struct {
	api MarketplaceAPI
}

func NewCatalogUseCase(api MarketplaceAPI) *CatalogUseCase {
	return &CatalogUseCase{api: api}
}

// Browse fetches the catalog and filters it locally. A failed fetch renders as an empty
// catalog; the error is kept for diagnostics only.
func (uc *CatalogUseCase) Browse(ctx context.Context, f Filter) BrowseResult {
	items, err := uc.api.ListItems(ctx, entity.ItemQuery{})
	if err != nil {
		logger.Trace("browse items", err)
		return BrowseResult{Items: []*entity.Item{}, Loading: false, Err: err}
	}
	return BrowseResult{Items: FilterItems(items, f), Loading: false}
}

// Get fetches one item. Any server rejection is shown as not found.
func (uc *CatalogUseCase) Get(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	item, err := uc.api.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CodeNetwork) || errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		return nil, errors.NotFound("Item", err)
	}
	return item, nil
}

func (uc *CatalogUseCase) MyListings(ctx context.Context, sellerID string) (*ListingOverview, error) {
	if sellerID == "" {
		return nil, errors.BadRequest("Seller ID is required", nil)
	}
	items, err := uc.api.ListItems(ctx, entity.ItemQuery{SellerID: sellerID})
	if err != nil {
		logger.Trace("list seller items", err)
		return nil, err
	}

	overview := &ListingOverview{Current: []*entity.Item{}, Past: []*entity.Item{}}
	for _, item := range items {
		if item.Status == entity.ItemStatusRented {
			overview.Past = append(overview.Past, item)
			continue
		}
		overview.Current = append(overview.Current, item)
	}
	return overview, nil
}
