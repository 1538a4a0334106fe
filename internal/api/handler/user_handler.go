package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialnet/friends-api/internal/core/ports"
)

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search looks up users by email or name.
//
// @Summary      Search users
// @Tags         user
// @Produce      json
// @Security     SessionAuth
// @Param        q     query     string  true   "Search term"
// @Param        page  query     int     false  "Page number"
// @Success      200   {object}  pageResponse
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /user/api/v1/search/ [get]
func (h *UserHandler) Search(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	if query == "" {
		return respondMessage(c, http.StatusBadRequest, "Please enter search query!")
	}

	page := queryPage(c)
	result, err := h.userService.Search(c.Request().Context(), actor, query, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginate(c, result.Total, page, pageSize, toUserResponses(result.Users)))
}
