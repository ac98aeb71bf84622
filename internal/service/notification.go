package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fridgehub/groups/internal/model"
	"fridgehub/groups/internal/repository"
)

// NotificationDispatcher emits best-effort owner notifications on
// membership changes. Failures are logged and swallowed: membership
// correctness takes priority over notification delivery, and there is no
// retry queue.
type NotificationDispatcher interface {
	NotifyJoin(ctx context.Context, recipientID, joinerID uuid.UUID, group *model.Group)
}

type notificationDispatcher struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

func NewNotificationDispatcher(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, logger *zap.Logger) NotificationDispatcher {
	return &notificationDispatcher{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (d *notificationDispatcher) NotifyJoin(ctx context.Context, recipientID, joinerID uuid.UUID, group *model.Group) {
	joinerName := "A new member"
	if joiner, err := d.userRepo.GetByID(ctx, joinerID); err == nil {
		joinerName = joiner.Name
	}

	n := &model.Notification{
		RecipientID:    recipientID,
		Type:           model.NotificationTypeGroupJoin,
		Message:        fmt.Sprintf("%s joined your group %q", joinerName, group.Name),
		RelatedUserID:  joinerID,
		RelatedGroupID: group.ID,
	}
	if err := d.notifRepo.Create(ctx, n); err != nil {
		d.logger.Warn("failed to record join notification",
			zap.String("group_id", group.ID.String()),
			zap.String("joiner_id", joinerID.String()),
			zap.Error(err),
		)
	}
}

// NotificationService is the recipient-facing read side.
type NotificationService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.notifRepo.ListForRecipient(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	err := s.notifRepo.MarkRead(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
