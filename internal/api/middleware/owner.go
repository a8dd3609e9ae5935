package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireSelf only lets a user act on their own account: the path parameter
// named param must equal the authenticated user id.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(UserIDKey).(string)
			if userID == "" || c.Param(param) != userID {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
