package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
	"fridgehub/groups/internal/repository"
)

// JoinResult reports the group joined and whether a new membership was
// created. Created is always true on success: re-joining is rejected with
// ErrAlreadyMember rather than treated as idempotent.
type JoinResult struct {
	Group   *model.Group
	Created bool
}

// InvitePreview is what a prospective member sees before joining.
type InvitePreview struct {
	GroupID     uuid.UUID
	Name        string
	MemberCount int64
	OwnerName   string
}

// Member is a group member's public profile.
type Member struct {
	ID       uuid.UUID
	Name     string
	Email    string
	IsOwner  bool
	JoinedAt time.Time
}

// MemberList is the restricted member view, available to owner and members.
type MemberList struct {
	GroupID   uuid.UUID
	GroupName string
	Members   []Member
}

// MembershipService validates and applies join/leave transitions against
// the group store.
type MembershipService interface {
	JoinByInviteCode(ctx context.Context, code string, userID uuid.UUID) (*JoinResult, error)
	PreviewByInviteCode(ctx context.Context, code string, userID uuid.UUID) (*InvitePreview, error)
	ListMembers(ctx context.Context, groupID, requesterID uuid.UUID) (*MemberList, error)
	Leave(ctx context.Context, groupID, userID uuid.UUID) error
}

type membershipService struct {
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	dispatcher NotificationDispatcher
	now        func() time.Time
}

func NewMembershipService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, dispatcher NotificationDispatcher) MembershipService {
	return &membershipService{
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// resolveInviteCode looks up the current code and applies the validity
// window. Unknown and superseded codes are indistinguishable on purpose:
// the caller learns nothing about code history.
func (s *membershipService) resolveInviteCode(ctx context.Context, code string) (*model.Group, error) {
	group, err := s.groupRepo.GetByInviteCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInviteCodeInvalid
	}
	if err != nil {
		return nil, err
	}
	// An expired-but-still-current code is a distinct failure: the group
	// exists, the owner just has to rotate the code.
	if !group.InviteCodeValid(s.now()) {
		return nil, ErrInviteCodeExpired
	}
	return group, nil
}

func (s *membershipService) JoinByInviteCode(ctx context.Context, code string, userID uuid.UUID) (*JoinResult, error) {
	group, err := s.resolveInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	// Atomic add-to-set: a concurrent duplicate join loses here even if it
	// passed the membership check above.
	if err := s.groupRepo.AddMember(ctx, group.ID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("add member: %w", err)
	}

	// Best-effort: the membership change stands regardless of whether the
	// owner notification could be recorded.
	s.dispatcher.NotifyJoin(ctx, group.OwnerID, userID, group)

	return &JoinResult{Group: group, Created: true}, nil
}

func (s *membershipService) PreviewByInviteCode(ctx context.Context, code string, userID uuid.UUID) (*InvitePreview, error) {
	group, err := s.resolveInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	count, err := s.groupRepo.CountMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, group.OwnerID); err == nil {
		ownerName = owner.Name
	}

	return &InvitePreview{
		GroupID:     group.ID,
		Name:        group.Name,
		MemberCount: count,
		OwnerName:   ownerName,
	}, nil
}

func (s *membershipService) ListMembers(ctx context.Context, groupID, requesterID uuid.UUID) (*MemberList, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember && group.OwnerID != requesterID {
		return nil, ErrNotMember
	}

	rows, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, Member{
			ID:       row.UserID,
			Name:     row.User.Name,
			Email:    row.User.Email,
			IsOwner:  row.UserID == group.OwnerID,
			JoinedAt: row.JoinedAt,
		})
	}

	return &MemberList{
		GroupID:   group.ID,
		GroupName: group.Name,
		Members:   members,
	}, nil
}

func (s *membershipService) Leave(ctx context.Context, groupID, userID uuid.UUID) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGroupNotFound
	}
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
