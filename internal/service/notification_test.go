package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fridgehub/groups/internal/model"
)

func TestNotifyJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("records a groupJoin notification with the joiner's name", func(t *testing.T) {
		users := newFakeUserRepo()
		notifs := newFakeNotificationRepo()
		dispatcher := NewNotificationDispatcher(notifs, users, zap.NewNop())

		owner := users.add("Alice", "alice@example.com")
		joiner := users.add("Bob", "bob@example.com")
		group := &model.Group{ID: uuid.New(), Name: "Kitchen", OwnerID: owner.ID}

		dispatcher.NotifyJoin(ctx, owner.ID, joiner.ID, group)

		got, _ := notifs.ListForRecipient(ctx, owner.ID)
		if len(got) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(got))
		}
		if got[0].Type != model.NotificationTypeGroupJoin {
			t.Errorf("type: got %q", got[0].Type)
		}
		if !strings.Contains(got[0].Message, "Bob") || !strings.Contains(got[0].Message, "Kitchen") {
			t.Errorf("message missing joiner or group name: %q", got[0].Message)
		}
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		users := newFakeUserRepo()
		notifs := newFakeNotificationRepo()
		notifs.createErr = errors.New("store down")
		dispatcher := NewNotificationDispatcher(notifs, users, zap.NewNop())

		owner := users.add("Alice", "alice@example.com")
		joiner := users.add("Bob", "bob@example.com")
		group := &model.Group{ID: uuid.New(), Name: "Kitchen", OwnerID: owner.ID}

		// Must not panic or propagate.
		dispatcher.NotifyJoin(ctx, owner.ID, joiner.ID, group)
	})
}

func TestNotificationService(t *testing.T) {
	ctx := context.Background()

	t.Run("list purges entries past retention", func(t *testing.T) {
		notifs := newFakeNotificationRepo()
		svc := NewNotificationService(notifs)
		recipient := uuid.New()

		fresh := &model.Notification{RecipientID: recipient, Type: model.NotificationTypeGroupJoin, Message: "fresh"}
		if err := notifs.Create(ctx, fresh); err != nil {
			t.Fatal(err)
		}
		stale := &model.Notification{
			RecipientID: recipient,
			Type:        model.NotificationTypeGroupJoin,
			Message:     "stale",
			CreatedAt:   time.Now().Add(-model.NotificationRetention - time.Hour),
		}
		if err := notifs.Create(ctx, stale); err != nil {
			t.Fatal(err)
		}

		got, err := svc.ListForUser(ctx, recipient)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(got) != 1 || got[0].Message != "fresh" {
			t.Errorf("expected only the fresh notification, got %+v", got)
		}
	})

	t.Run("mark read", func(t *testing.T) {
		notifs := newFakeNotificationRepo()
		svc := NewNotificationService(notifs)
		recipient := uuid.New()

		n := &model.Notification{RecipientID: recipient, Type: model.NotificationTypeGroupJoin, Message: "hi"}
		if err := notifs.Create(ctx, n); err != nil {
			t.Fatal(err)
		}

		if err := svc.MarkRead(ctx, n.ID, recipient); err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}
		got, _ := svc.ListForUser(ctx, recipient)
		if len(got) != 1 || !got[0].Read {
			t.Error("notification should be marked read")
		}
	})

	t.Run("mark read rejects another recipient's notification", func(t *testing.T) {
		notifs := newFakeNotificationRepo()
		svc := NewNotificationService(notifs)

		n := &model.Notification{RecipientID: uuid.New(), Type: model.NotificationTypeGroupJoin, Message: "hi"}
		if err := notifs.Create(ctx, n); err != nil {
			t.Fatal(err)
		}

		if err := svc.MarkRead(ctx, n.ID, uuid.New()); !errors.Is(err, ErrNotificationNotFound) {
			t.Errorf("expected ErrNotificationNotFound, got %v", err)
		}
	})
}
