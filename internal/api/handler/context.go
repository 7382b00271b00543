package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// BearerToken extracts the bearer token from the Authorization header. It is
// used directly by the refresh endpoint, which must accept tokens the
// verifying middleware would reject as expired.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
