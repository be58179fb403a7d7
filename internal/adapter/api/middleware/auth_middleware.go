package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/response"
)

// Context keys set by Authenticate.
const (
	ContextUID  = "uid"
	ContextUser = "user"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type AuthMiddleware struct {
	accounts Authenticator
}

func NewAuthMiddleware(accounts Authenticator) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// Authenticate requires a bearer token in the Authorization header.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, false)
}

// AuthenticateWebSocket also accepts the token query parameter, since browsers cannot set
// headers on an upgrade request. Mount it on the chat socket only.
func (m *AuthMiddleware) AuthenticateWebSocket(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, true)
}

func (m *AuthMiddleware) authenticate(next echo.HandlerFunc, allowQuery bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c, allowQuery)
		if err != nil {
			return response.Error(c, err)
		}

		user, err := m.accounts.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(ContextUID, user.ID)
		c.Set(ContextUser, user)
		return next(c)
	}
}

func bearerToken(c echo.Context, allowQuery bool) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); allowQuery && token != "" {
			return token, nil
		}
		return "", errors.Unauthorized("Not authenticated", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

// CurrentUser returns the user set by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextUser).(*entity.User)
	return user, ok && user != nil
}
