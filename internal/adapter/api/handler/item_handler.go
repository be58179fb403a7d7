package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/middleware"
	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/response"
	"wardrobe101/pkg/utils"
)

type ItemHandler struct {
	inventoryUseCase *usecase.InventoryUseCase
}

func NewItemHandler(inventoryUseCase *usecase.InventoryUseCase) *ItemHandler {
	return &ItemHandler{
		inventoryUseCase: inventoryUseCase,
	}
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	query := entity.ItemQuery{
		SellerID: c.QueryParam("seller_id"),
		Category: c.QueryParam("category"),
		Type:     c.QueryParam("type"),
		Size:     c.QueryParam("size"),
		Search:   c.QueryParam("q"),
	}

	pagination := utils.GetPaginationParams(c)
	if pagination.Enabled {
		query.Page = pagination.Page
		query.Limit = pagination.PageSize
	}

	items, total, err := h.inventoryUseCase.ListItems(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.inventoryUseCase.GetItem(c.Request().Context(), entity.ItemID(c.Param("id")))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

// CreateItem ignores any seller_id in the body; the seller is the token holder.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req entity.ItemPayload
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	seller, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Not authenticated", nil))
	}

	item, err := h.inventoryUseCase.CreateItem(c.Request().Context(), seller, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}
