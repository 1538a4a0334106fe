package handler

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageSize is the fixed page size shared by every list endpoint.
const pageSize = 10

// envelope is the canonical body for all non-paginated endpoints:
// {"success": <bool>, "response": <payload>}.
type envelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
}

type messageBody struct {
	Message string `json:"message"`
}

// respondMessage writes the standard envelope with a message payload.
// Success is derived from the status code.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{
		Success:  status < 400,
		Response: messageBody{Message: message},
	})
}

// respond writes the standard envelope with an arbitrary payload.
func respond(c echo.Context, status int, payload any) error {
	return c.JSON(status, envelope{
		Success:  status < 400,
		Response: payload,
	})
}

// pageResponse is the pagination envelope used by every list endpoint:
// {"count": N, "next": url|null, "previous": url|null, "results": [...]}.
type pageResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// paginate builds the page envelope for the current request. Page numbers
// are 1-based; next/previous are the request URL with the page query
// parameter adjusted, or null at either edge.
func paginate(c echo.Context, count int64, page, pageSize int, results any) pageResponse {
	resp := pageResponse{Count: count, Results: results}

	if int64(page*pageSize) < count {
		resp.Next = pageLink(c, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(c, page-1)
	}
	return resp
}

func pageLink(c echo.Context, page int) *string {
	u := *c.Request().URL
	q, _ := url.ParseQuery(u.RawQuery)
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// queryPage parses the 1-based page query parameter, defaulting to 1.
func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
