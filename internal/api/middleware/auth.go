package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loginguard/auth-system/internal/core/domain"
	"github.com/loginguard/auth-system/internal/core/ports"
)

// Auth verifies the bearer token and injects the authenticated identity into
// the request context. Handlers receive the user id explicitly — there is no
// ambient "current user" anywhere.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := tokens.Verify(c.Request().Context(), parts[1])
			if err != nil {
				switch err {
				case domain.ErrTokenExpired:
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				case domain.ErrTokenInvalid:
					return echo.NewHTTPError(http.StatusUnauthorized, "token invalid")
				}
				// Revocation list unreachable or similar: fail closed.
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set("user_id", userID)
			c.Set("raw_token", parts[1])

			return next(c)
		}
	}
}
