package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// apiError is the uniform envelope rendered for every error path.
type apiError struct {
	Success  bool         `json:"success"`
	Response errorMessage `json:"response"`
}

type errorMessage struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the canonical {"success": false, "response": {"message": ...}} envelope.
//
// Handlers translate most domain errors themselves to control exact message
// wording; this handler is the safety net for middleware errors and anything
// a handler lets escape.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, apiError{Success: false, Response: errorMessage{Message: msg}})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "Please select valid friend!"
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, "Friend request not found!"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusBadRequest, "Friend request already sent!"
	case errors.Is(err, domain.ErrAlreadyFriends):
		return http.StatusBadRequest, "Friend request already accepted!"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "You can send only 3 requests per minute!"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered with another user!"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong!"
}
