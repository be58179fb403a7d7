package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/middleware"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/response"
)

type UserHandler struct {
	accountUseCase *usecase.AccountUseCase
}

func NewUserHandler(accountUseCase *usecase.AccountUseCase) *UserHandler {
	return &UserHandler{
		accountUseCase: accountUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Not authenticated", nil))
	}
	return response.Success(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.accountUseCase.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
