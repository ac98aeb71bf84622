package model

import (
	"time"

	"github.com/google/uuid"
)

const NotificationTypeGroupJoin = "groupJoin"

// NotificationRetention is the passive TTL after which notifications are
// purged on read. No background job exists.
const NotificationRetention = 30 * 24 * time.Hour

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecipientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Type           string    `gorm:"type:varchar(30);not null" json:"type"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	Read           bool      `gorm:"not null;default:false" json:"read"`
	RelatedUserID  uuid.UUID `gorm:"type:uuid" json:"related_user_id"`
	RelatedGroupID uuid.UUID `gorm:"type:uuid" json:"related_group_id"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
