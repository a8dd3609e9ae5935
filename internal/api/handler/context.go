package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photogram/photogram-api/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. A missing
// value means the route was mounted without Auth; reject with 401.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
