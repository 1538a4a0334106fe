package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

type stubNotificationRepo struct {
	rows      []*domain.Notification
	insertErr error
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *n
	clone.ID = fmt.Sprintf("n-%d", len(r.rows)+1)
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error) {
	var matched []*domain.Notification
	for _, n := range r.rows {
		if n.UserID != userID {
			continue
		}
		clone := *n
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	return slicePage(matched, page, limit), total, nil
}

func TestNotificationService_Process(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, discardLogger)

	err := svc.Process(context.Background(), ports.NotificationInput{
		UserID:  "u2",
		ActorID: "u1",
		Kind:    domain.NotificationRequestReceived,
		Message: "user1 sent you a friend request",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.rows))
	}
	stored := repo.rows[0]
	if stored.UserID != "u2" || stored.ActorID != "u1" || stored.Kind != domain.NotificationRequestReceived {
		t.Fatalf("unexpected stored notification: %+v", stored)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestNotificationService_List(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, discardLogger)

	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		repo.rows = append(repo.rows, &domain.Notification{
			ID:        fmt.Sprintf("n-%d", i),
			UserID:    "u1",
			Kind:      domain.NotificationRequestReceived,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	repo.rows = append(repo.rows, &domain.Notification{
		ID: "other", UserID: "u2", CreatedAt: base,
	})

	page, err := svc.List(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 12 {
		t.Fatalf("expected 12 notifications, got %d", page.Total)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 on page 1, got %d", len(page.Items))
	}
	if page.Items[0].ID != "n-11" {
		t.Fatalf("expected newest first, got %s", page.Items[0].ID)
	}

	page2, err := svc.List(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("List page 2 failed: %v", err)
	}
	if len(page2.Items) != 2 {
		t.Fatalf("expected 2 on page 2, got %d", len(page2.Items))
	}
}
