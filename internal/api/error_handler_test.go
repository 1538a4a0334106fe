package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/socialnet/friends-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"echo error", echo.NewHTTPError(http.StatusForbidden, "Authentication credentials were not provided."), http.StatusForbidden, "Authentication credentials were not provided."},
		{"user not found", domain.ErrUserNotFound, http.StatusBadRequest, "Please select valid friend!"},
		{"request not found", domain.ErrRequestNotFound, http.StatusNotFound, "Friend request not found!"},
		{"duplicate request", domain.ErrDuplicateRequest, http.StatusBadRequest, "Friend request already sent!"},
		{"already friends", domain.ErrAlreadyFriends, http.StatusBadRequest, "Friend request already accepted!"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "You can send only 3 requests per minute!"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "Email already registered with another user!"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "Something went wrong!"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}

			var body apiError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatal("error envelope must have success=false")
			}
			if body.Response.Message != tc.message {
				t.Fatalf("message = %q, want %q", body.Response.Message, tc.message)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// A handler already wrote a response; the error handler must not clobber it.
	_ = c.JSON(http.StatusOK, map[string]string{"ok": "yes"})

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response overwritten: %d", rec.Code)
	}
}
