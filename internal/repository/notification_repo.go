package repository

import (
	"context"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListForRecipient purges rows past the retention window and returns
	// the remainder, newest first. Retention is passive; there is no
	// background job.
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error)
	// MarkRead flips the read flag. ErrNotFound when the notification
	// does not exist or belongs to another recipient.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
}
