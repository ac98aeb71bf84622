package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
)

// GroupRepository owns Group records and their invariants: one current
// invite code per group, globally unique codes, and set semantics on the
// member list. All mutations are single-round-trip atomic statements.
type GroupRepository interface {
	// Create persists the group together with its owner's membership row
	// in one transaction. Returns ErrDuplicateInviteCode when the
	// generated code collides with any stored code.
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	// GetByInviteCode resolves the current code only; superseded codes
	// are overwritten in place and therefore never resolve.
	GetByInviteCode(ctx context.Context, code string) (*model.Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Group, error)
	// UpdateInviteCode replaces code and expiry together in a single
	// UPDATE; there is no window where only one of the two is written.
	UpdateInviteCode(ctx context.Context, groupID uuid.UUID, code string, expiresAt time.Time) error
	// AddMember is an atomic add-to-set. Returns ErrDuplicateMember when
	// the user is already in the set.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error)
	CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}
