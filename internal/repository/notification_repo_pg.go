package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fridgehub/groups/internal/model"
)

type pgNotificationRepository struct {
	db *gorm.DB
}

func NewPGNotificationRepository(db *gorm.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *pgNotificationRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	cutoff := time.Now().Add(-model.NotificationRetention)

	// Opportunistic purge of expired rows before reading.
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND created_at < ?", recipientID, cutoff).
		Delete(&model.Notification{}).Error; err != nil {
		return nil, err
	}

	var notifications []model.Notification
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
