package model

import (
	"time"

	"github.com/google/uuid"
)

// Group is the shareable household unit: one owner, a member set, and
// exactly one current invite code at any instant. A superseded code is
// overwritten in place, so it can never resolve again.
type Group struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                string    `gorm:"type:varchar(100);not null" json:"name"`
	OwnerID             uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	FridgeID            string    `gorm:"type:varchar(64);not null" json:"fridge_id"`
	InviteCode          string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"invite_code"`
	InviteCodeExpiresAt time.Time `gorm:"not null" json:"invite_code_expires_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (Group) TableName() string { return "groups" }

// InviteCodeValid reports whether the current code is still inside its
// validity window at the given instant.
func (g *Group) InviteCodeValid(now time.Time) bool {
	return now.Before(g.InviteCodeExpiresAt)
}

// GroupMember is one row of a group's member set. The composite primary
// key makes the set semantics enforceable at the storage layer.
type GroupMember struct {
	GroupID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GroupMember) TableName() string { return "group_members" }
