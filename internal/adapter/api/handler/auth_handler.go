package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/response"
)

type AuthHandler struct {
	accountUseCase *usecase.AccountUseCase
}

func NewAuthHandler(accountUseCase *usecase.AccountUseCase) *AuthHandler {
	return &AuthHandler{
		accountUseCase: accountUseCase,
	}
}

// Login takes the OAuth2 password form: username is the email.
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return response.Error(c, errors.Validation(
			errors.FieldProblem{Field: "username", Reason: "is required"},
			errors.FieldProblem{Field: "password", Reason: "is required"},
		))
	}

	token, err := h.accountUseCase.Login(c.Request().Context(), username, password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, token)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.accountUseCase.Signup(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
