package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubFriendService struct {
	sendFn    func(ctx context.Context, actorID, targetID string) error
	acceptFn  func(ctx context.Context, actorID, requestID string) error
	rejectFn  func(ctx context.Context, actorID, requestID string) error
	friendsFn func(ctx context.Context, userID string, page int) (*ports.UserPage, error)
	pendingFn func(ctx context.Context, userID string, page int) (*ports.PendingRequestPage, error)
}

func (s *stubFriendService) Send(ctx context.Context, actorID, targetID string) error {
	return s.sendFn(ctx, actorID, targetID)
}

func (s *stubFriendService) Accept(ctx context.Context, actorID, requestID string) error {
	return s.acceptFn(ctx, actorID, requestID)
}

func (s *stubFriendService) Reject(ctx context.Context, actorID, requestID string) error {
	return s.rejectFn(ctx, actorID, requestID)
}

func (s *stubFriendService) Friends(ctx context.Context, userID string, page int) (*ports.UserPage, error) {
	return s.friendsFn(ctx, userID, page)
}

func (s *stubFriendService) PendingRequests(ctx context.Context, userID string, page int) (*ports.PendingRequestPage, error) {
	return s.pendingFn(ctx, userID, page)
}

type stubNotificationService struct {
	listFn func(ctx context.Context, userID string, page int) (*ports.NotificationPage, error)
}

func (s *stubNotificationService) Process(context.Context, ports.NotificationInput) error {
	return nil
}

func (s *stubNotificationService) List(ctx context.Context, userID string, page int) (*ports.NotificationPage, error) {
	return s.listFn(ctx, userID, page)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestContext(t *testing.T, method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success  bool `json:"success"`
		Response struct {
			Message string `json:"message"`
		} `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return body.Success, body.Response.Message
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pageResponse {
	t.Helper()
	var body pageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode page: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (body: %s)", status, rec.Code, rec.Body.String())
	}
	success, msg := decodeEnvelope(t, rec)
	if wantSuccess := status < 400; success != wantSuccess {
		t.Fatalf("expected success=%v, got %v", wantSuccess, success)
	}
	if msg != message {
		t.Fatalf("expected message %q, got %q", message, msg)
	}
}

// ---------------------------------------------------------------------------
// Actions dispatch
// ---------------------------------------------------------------------------

func TestFriendHandler_Actions_Unauthenticated(t *testing.T) {
	h := NewFriendHandler(&stubFriendService{}, &stubNotificationService{})
	e, c, rec := newTestContext(t, http.MethodPost, "/api/v1/friend-request/", `{"action":"send","friend_id":"u2"}`)

	if err := h.Actions(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestFriendHandler_Actions_Validation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing action", `{"friend_id":"u2"}`, "Please enter action!"},
		{"unknown action", `{"action":"poke","friend_id":"u2"}`, "Please enter valid action!"},
		{"send without friend", `{"action":"send"}`, "Please select friend!"},
		{"accept without request", `{"action":"accept"}`, "Please select friend request!"},
		{"reject without request", `{"action":"reject"}`, "Please select friend request!"},
	}

	h := NewFriendHandler(&stubFriendService{}, &stubNotificationService{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, c, rec := newTestContext(t, http.MethodPost, "/api/v1/friend-request/", tc.body)
			c.Set("user_id", "u1")

			if err := h.Actions(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			assertMessage(t, rec, http.StatusBadRequest, tc.message)
		})
	}
}

func TestFriendHandler_Send(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"ok", nil, http.StatusOK, "Friend request sent successfully!"},
		{"unknown target", domain.ErrUserNotFound, http.StatusBadRequest, "Please select valid friend!"},
		{"self request", domain.ErrSelfRequest, http.StatusBadRequest, "You cannot send a friend request to yourself!"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "You can send only 3 requests per minute!"},
		{"duplicate", domain.ErrDuplicateRequest, http.StatusBadRequest, "Friend request already sent!"},
		{"already friends", domain.ErrAlreadyFriends, http.StatusBadRequest, "Friend request already accepted!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotActor, gotTarget string
			svc := &stubFriendService{
				sendFn: func(_ context.Context, actorID, targetID string) error {
					gotActor, gotTarget = actorID, targetID
					return tc.err
				},
			}
			h := NewFriendHandler(svc, &stubNotificationService{})
			_, c, rec := newTestContext(t, http.MethodPost, "/api/v1/friend-request/", `{"action":"send","friend_id":"u2"}`)
			c.Set("user_id", "u1")

			if err := h.Actions(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			assertMessage(t, rec, tc.status, tc.message)
			if gotActor != "u1" || gotTarget != "u2" {
				t.Fatalf("service called with %s/%s", gotActor, gotTarget)
			}
		})
	}
}

func TestFriendHandler_Accept(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"ok", nil, http.StatusOK, "Friend request accepted successfully!"},
		{"not found", domain.ErrRequestNotFound, http.StatusNotFound, "Friend request not found!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubFriendService{
				acceptFn: func(_ context.Context, _, requestID string) error {
					if requestID != "req-1" {
						t.Fatalf("unexpected request id %s", requestID)
					}
					return tc.err
				},
			}
			h := NewFriendHandler(svc, &stubNotificationService{})
			_, c, rec := newTestContext(t, http.MethodPost, "/api/v1/friend-request/", `{"action":"accept","friend_request_id":"req-1"}`)
			c.Set("user_id", "u2")

			if err := h.Actions(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			assertMessage(t, rec, tc.status, tc.message)
		})
	}
}

func TestFriendHandler_Reject(t *testing.T) {
	svc := &stubFriendService{
		rejectFn: func(_ context.Context, _, _ string) error { return nil },
	}
	h := NewFriendHandler(svc, &stubNotificationService{})
	_, c, rec := newTestContext(t, http.MethodPost, "/api/v1/friend-request/", `{"action":"reject","friend_request_id":"req-1"}`)
	c.Set("user_id", "u2")

	if err := h.Actions(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertMessage(t, rec, http.StatusOK, "Friend request rejected successfully!")
}

// ---------------------------------------------------------------------------
// List endpoints
// ---------------------------------------------------------------------------

func TestFriendHandler_Friends(t *testing.T) {
	svc := &stubFriendService{
		friendsFn: func(_ context.Context, userID string, page int) (*ports.UserPage, error) {
			if userID != "u1" || page != 1 {
				t.Fatalf("unexpected args %s/%d", userID, page)
			}
			return &ports.UserPage{
				Users: []*domain.User{
					{ID: "u2", Email: "user2@example.com", Name: "user2"},
				},
				Total: 15,
			}, nil
		},
	}
	h := NewFriendHandler(svc, &stubNotificationService{})
	_, c, rec := newTestContext(t, http.MethodGet, "/api/v1/friends/", "")
	c.Set("user_id", "u1")

	if err := h.Friends(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	page := decodePage(t, rec)
	if page.Count != 15 {
		t.Fatalf("expected count 15, got %d", page.Count)
	}
	if page.Next == nil || !strings.Contains(*page.Next, "page=2") {
		t.Fatalf("expected next link to page 2, got %v", page.Next)
	}
	if page.Previous != nil {
		t.Fatalf("expected null previous on page 1, got %v", *page.Previous)
	}
}

func TestFriendHandler_PendingRequests(t *testing.T) {
	svc := &stubFriendService{
		pendingFn: func(_ context.Context, _ string, _ int) (*ports.PendingRequestPage, error) {
			return &ports.PendingRequestPage{
				Items: []ports.PendingRequestItem{
					{
						ID:       "req-1",
						FromUser: &domain.User{ID: "u2", Email: "user2@example.com", Name: "user2"},
						ToUser:   &domain.User{ID: "u1", Email: "user1@example.com", Name: "user1"},
					},
				},
				Total: 1,
			}, nil
		},
	}
	h := NewFriendHandler(svc, &stubNotificationService{})
	_, c, rec := newTestContext(t, http.MethodGet, "/api/v1/pending-friend-requests/", "")
	c.Set("user_id", "u1")

	if err := h.PendingRequests(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Count   int64 `json:"count"`
		Results []struct {
			ID       string `json:"id"`
			FromUser struct {
				Email string `json:"email"`
			} `json:"from_user"`
			ToUser struct {
				Email string `json:"email"`
			} `json:"to_user"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 1 || len(body.Results) != 1 {
		t.Fatalf("unexpected page: %+v", body)
	}
	if body.Results[0].FromUser.Email != "user2@example.com" || body.Results[0].ToUser.Email != "user1@example.com" {
		t.Fatalf("parties not resolved: %+v", body.Results[0])
	}
}

func TestFriendHandler_Notifications(t *testing.T) {
	notifications := &stubNotificationService{
		listFn: func(_ context.Context, userID string, _ int) (*ports.NotificationPage, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user %s", userID)
			}
			return &ports.NotificationPage{Items: nil, Total: 0}, nil
		},
	}
	h := NewFriendHandler(&stubFriendService{}, notifications)
	_, c, rec := newTestContext(t, http.MethodGet, "/api/v1/notifications/", "")
	c.Set("user_id", "u1")

	if err := h.Notifications(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	page := decodePage(t, rec)
	if page.Count != 0 || page.Next != nil || page.Previous != nil {
		t.Fatalf("expected empty page, got %+v", page)
	}
}
