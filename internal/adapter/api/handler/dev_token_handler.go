package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/response"
)

// DevTokenHandler hands out a token for the seeded demo seller. Development only.
type DevTokenHandler struct {
	accountUseCase *usecase.AccountUseCase
	email          string
	password       string
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(accountUseCase *usecase.AccountUseCase, email, password string) *DevTokenHandler {
	return &DevTokenHandler{
		accountUseCase: accountUseCase,
		email:          email,
		password:       password,
	}
}

func SetupDevTokenHandler(accountUseCase *usecase.AccountUseCase, email, password string) {
	devTokenHandler = NewDevTokenHandler(accountUseCase, email, password)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := h.accountUseCase.Login(ctx, h.email, h.password)
	if err != nil {
		return response.Error(c, err)
	}
	user, err := h.accountUseCase.Authenticate(ctx, token.AccessToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"user":         user,
	})
}
