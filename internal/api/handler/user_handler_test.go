package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

type stubUserService struct {
	searchFn func(ctx context.Context, actorID, query string, page int) (*ports.UserPage, error)
}

func (s *stubUserService) Search(ctx context.Context, actorID, query string, page int) (*ports.UserPage, error) {
	return s.searchFn(ctx, actorID, query, page)
}

func TestUserHandler_Search(t *testing.T) {
	svc := &stubUserService{
		searchFn: func(_ context.Context, actorID, query string, page int) (*ports.UserPage, error) {
			if actorID != "u1" || query != "amy" || page != 2 {
				t.Fatalf("unexpected args: %s/%s/%d", actorID, query, page)
			}
			return &ports.UserPage{
				Users: []*domain.User{{ID: "u2", Email: "amy@example.com", Name: "amy"}},
				Total: 25,
			}, nil
		},
	}
	h := NewUserHandler(svc)
	_, c, rec := newTestContext(t, http.MethodGet, "/user/api/v1/search/?q=amy&page=2", "")
	c.Set("user_id", "u1")

	if err := h.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	page := decodePage(t, rec)
	if page.Count != 25 {
		t.Fatalf("expected count 25, got %d", page.Count)
	}
	// Middle page: both links present, query preserved.
	if page.Next == nil || !strings.Contains(*page.Next, "page=3") || !strings.Contains(*page.Next, "q=amy") {
		t.Fatalf("unexpected next link: %v", page.Next)
	}
	if page.Previous == nil || !strings.Contains(*page.Previous, "page=1") {
		t.Fatalf("unexpected previous link: %v", page.Previous)
	}
}

func TestUserHandler_Search_MissingQuery(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	_, c, rec := newTestContext(t, http.MethodGet, "/user/api/v1/search/", "")
	c.Set("user_id", "u1")

	if err := h.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertMessage(t, rec, http.StatusBadRequest, "Please enter search query!")
}

func TestUserHandler_Search_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	e, c, rec := newTestContext(t, http.MethodGet, "/user/api/v1/search/?q=amy", "")

	if err := h.Search(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
