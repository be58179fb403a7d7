package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/middleware"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyer, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Not authenticated", nil))
	}

	order, err := h.orderUseCase.PlaceOrder(c.Request().Context(), buyer, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

// ListOrders returns orders where the caller is buyer or seller.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	uid, _ := c.Get(middleware.ContextUID).(string)

	orders, err := h.orderUseCase.ListOrders(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}
