package repository

import (
	"strings"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/utils"
)

const filterAll = "all"

func matchesField(want, got string) bool {
	return want == "" || want == filterAll || want == got
}

// matchesItemQuery applies the equality filters and the title/brand search.
func matchesItemQuery(item *entity.Item, q entity.ItemQuery) bool {
	if !matchesField(q.SellerID, item.SellerID) ||
		!matchesField(q.Category, item.Category) ||
		!matchesField(q.Size, item.Size) ||
		!matchesField(q.Type, string(item.Type)) {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		return strings.Contains(strings.ToLower(item.Title), search) ||
			strings.Contains(strings.ToLower(item.Brand), search)
	}
	return true
}

// pageWindow returns the slice bounds for page/limit over total items. A zero limit means
// no paging.
func pageWindow(total, page, limit int) (int, int) {
	return utils.NewPaginationParams(page, limit).Window(total)
}
