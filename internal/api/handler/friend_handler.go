package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/socialnet/friends-api/internal/api/metrics"
	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

// FriendHandler serves the friend-request workflow and the ledger read
// projections.
type FriendHandler struct {
	friendService ports.FriendService
	notifications ports.NotificationService
}

func NewFriendHandler(friendService ports.FriendService, notifications ports.NotificationService) *FriendHandler {
	return &FriendHandler{friendService: friendService, notifications: notifications}
}

const (
	actionSend   = "send"
	actionAccept = "accept"
	actionReject = "reject"
)

// Actions dispatches a friend-request action: send, accept, or reject.
//
// @Summary      Send, accept, or reject a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      friendActionRequest  true  "Action and its parameter"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      429   {object}  envelope
// @Router       /api/v1/friend-request/ [post]
func (h *FriendHandler) Actions(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req friendActionRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body!")
	}

	// Dispatch validation runs before any action-specific logic.
	if req.Action == "" {
		return respondMessage(c, http.StatusBadRequest, "Please enter action!")
	}
	switch req.Action {
	case actionSend, actionAccept, actionReject:
	default:
		return respondMessage(c, http.StatusBadRequest, "Please enter valid action!")
	}
	if req.Action == actionSend && req.FriendID == "" {
		return respondMessage(c, http.StatusBadRequest, "Please select friend!")
	}
	if req.Action != actionSend && req.FriendRequestID == "" {
		return respondMessage(c, http.StatusBadRequest, "Please select friend request!")
	}

	switch req.Action {
	case actionSend:
		return h.send(c, actor, req.FriendID)
	case actionAccept:
		return h.accept(c, actor, req.FriendRequestID)
	default:
		return h.reject(c, actor, req.FriendRequestID)
	}
}

func (h *FriendHandler) send(c echo.Context, actor, friendID string) error {
	err := h.friendService.Send(c.Request().Context(), actor, friendID)
	switch {
	case err == nil:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "ok").Inc()
		return respondMessage(c, http.StatusOK, "Friend request sent successfully!")
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "rejected").Inc()
		return respondMessage(c, http.StatusBadRequest, "Please select valid friend!")
	case errors.Is(err, domain.ErrSelfRequest):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "rejected").Inc()
		return respondMessage(c, http.StatusBadRequest, "You cannot send a friend request to yourself!")
	case errors.Is(err, domain.ErrRateLimited):
		metrics.RateLimitedTotal.Inc()
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "rejected").Inc()
		return respondMessage(c, http.StatusTooManyRequests, "You can send only 3 requests per minute!")
	case errors.Is(err, domain.ErrDuplicateRequest):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "rejected").Inc()
		return respondMessage(c, http.StatusBadRequest, "Friend request already sent!")
	case errors.Is(err, domain.ErrAlreadyFriends):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "rejected").Inc()
		return respondMessage(c, http.StatusBadRequest, "Friend request already accepted!")
	default:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionSend, "error").Inc()
		return err
	}
}

func (h *FriendHandler) accept(c echo.Context, actor, requestID string) error {
	err := h.friendService.Accept(c.Request().Context(), actor, requestID)
	switch {
	case err == nil:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionAccept, "ok").Inc()
		return respondMessage(c, http.StatusOK, "Friend request accepted successfully!")
	case errors.Is(err, domain.ErrRequestNotFound):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionAccept, "rejected").Inc()
		return respondMessage(c, http.StatusNotFound, "Friend request not found!")
	default:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionAccept, "error").Inc()
		return err
	}
}

func (h *FriendHandler) reject(c echo.Context, actor, requestID string) error {
	err := h.friendService.Reject(c.Request().Context(), actor, requestID)
	switch {
	case err == nil:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionReject, "ok").Inc()
		return respondMessage(c, http.StatusOK, "Friend request rejected successfully!")
	case errors.Is(err, domain.ErrRequestNotFound):
		metrics.FriendRequestActionsTotal.WithLabelValues(actionReject, "rejected").Inc()
		return respondMessage(c, http.StatusNotFound, "Friend request not found!")
	default:
		metrics.FriendRequestActionsTotal.WithLabelValues(actionReject, "error").Inc()
		return err
	}
}

// Friends lists the caller's friends ordered by email.
//
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Security     SessionAuth
// @Param        page  query     int  false  "Page number"
// @Success      200   {object}  pageResponse
// @Failure      403   {object}  envelope
// @Router       /api/v1/friends/ [get]
func (h *FriendHandler) Friends(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	result, err := h.friendService.Friends(c.Request().Context(), actor, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginate(c, result.Total, page, pageSize, toUserResponses(result.Users)))
}

// PendingRequests lists unresolved requests involving the caller, newest first.
//
// @Summary      List pending friend requests
// @Tags         friends
// @Produce      json
// @Security     SessionAuth
// @Param        page  query     int  false  "Page number"
// @Success      200   {object}  pageResponse
// @Failure      403   {object}  envelope
// @Router       /api/v1/pending-friend-requests/ [get]
func (h *FriendHandler) PendingRequests(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	result, err := h.friendService.PendingRequests(c.Request().Context(), actor, page)
	if err != nil {
		return err
	}

	results := make([]pendingRequestResponse, 0, len(result.Items))
	for _, item := range result.Items {
		results = append(results, pendingRequestResponse{
			ID:       item.ID,
			FromUser: toUserResponse(item.FromUser),
			ToUser:   toUserResponse(item.ToUser),
		})
	}

	return c.JSON(http.StatusOK, paginate(c, result.Total, page, pageSize, results))
}

// Notifications lists the caller's notifications, newest first.
//
// @Summary      List notifications
// @Tags         friends
// @Produce      json
// @Security     SessionAuth
// @Param        page  query     int  false  "Page number"
// @Success      200   {object}  pageResponse
// @Failure      403   {object}  envelope
// @Router       /api/v1/notifications/ [get]
func (h *FriendHandler) Notifications(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	result, err := h.notifications.List(c.Request().Context(), actor, page)
	if err != nil {
		return err
	}

	results := make([]notificationResponse, 0, len(result.Items))
	for _, n := range result.Items {
		results = append(results, notificationResponse{
			ID:        n.ID,
			Kind:      string(n.Kind),
			ActorID:   n.ActorID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, paginate(c, result.Total, page, pageSize, results))
}
