package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

const currentUserKey = "current_user"

type Authenticator interface {
	ResolveCurrentUser(ctx context.Context, token string) (*model.User, error)
}

// BearerAuth resolves the Authorization header to a user and stores it on
// the echo context.
func BearerAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return apperrors.ErrAuthenticationFailed
			}

			user, err := auth.ResolveCurrentUser(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by BearerAuth.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, apperrors.ErrAuthenticationFailed
	}
	return user, nil
}
