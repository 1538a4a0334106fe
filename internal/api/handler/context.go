package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// actorID extracts the authenticated user id injected by the Session
// middleware. Its presence proves the middleware ran; handlers behind the
// auth group fail closed if it is missing.
func actorID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusForbidden, "Authentication credentials were not provided.")
	}
	return id, nil
}
