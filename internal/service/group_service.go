package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
	"fridgehub/groups/internal/repository"
	"fridgehub/groups/pkg/invitecode"
)

// maxCodeAttempts bounds the generate-and-verify loop on invite code
// collisions. Exhaustion fails loudly instead of accepting a collision.
const maxCodeAttempts = 5

// GroupSummary pairs a group with its member count for listings.
type GroupSummary struct {
	Group       model.Group
	MemberCount int64
}

type GroupService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, fridgeID string) (*model.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]GroupSummary, error)
	// RegenerateInviteCode atomically replaces the group's code and expiry
	// as one unit; the previous code becomes unresolvable immediately.
	RegenerateInviteCode(ctx context.Context, groupID, requesterID uuid.UUID) (*model.Group, error)
	// EmailInvite mails the group's invite link to a friend. Member-gated.
	EmailInvite(ctx context.Context, groupID, requesterID uuid.UUID, email string) error
	// InviteLink builds the shareable join URL for a code.
	InviteLink(code string) string
}

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	mailer    MailSender
	baseURL   string
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, mailer MailSender, baseURL string) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *groupService) Create(ctx context.Context, ownerID uuid.UUID, name, fridgeID string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(fridgeID) == "" {
		return nil, ErrFridgeRequired
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, expiresAt, err := invitecode.Generate()
		if err != nil {
			return nil, err
		}

		group := &model.Group{
			Name:                name,
			OwnerID:             ownerID,
			FridgeID:            fridgeID,
			InviteCode:          code,
			InviteCodeExpiresAt: expiresAt,
		}
		err = s.groupRepo.Create(ctx, group)
		if errors.Is(err, repository.ErrDuplicateInviteCode) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}
		return group, nil
	}
	return nil, ErrInviteCodeExhausted
}

func (s *groupService) GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListForUser(ctx context.Context, userID uuid.UUID) ([]GroupSummary, error) {
	groups, err := s.groupRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		count, err := s.groupRepo.CountMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, GroupSummary{Group: g, MemberCount: count})
	}
	return summaries, nil
}

func (s *groupService) RegenerateInviteCode(ctx context.Context, groupID, requesterID uuid.UUID) (*model.Group, error) {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, expiresAt, err := invitecode.Generate()
		if err != nil {
			return nil, err
		}

		err = s.groupRepo.UpdateInviteCode(ctx, groupID, code, expiresAt)
		if errors.Is(err, repository.ErrDuplicateInviteCode) {
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("regenerate invite code: %w", err)
		}

		group.InviteCode = code
		group.InviteCodeExpiresAt = expiresAt
		return group, nil
	}
	return nil, ErrInviteCodeExhausted
}

func (s *groupService) EmailInvite(ctx context.Context, groupID, requesterID uuid.UUID, email string) error {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return err
	}
	if !isMember && group.OwnerID != requesterID {
		return ErrNotMember
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("load requester: %w", err)
	}

	link := s.InviteLink(group.InviteCode)
	subject := fmt.Sprintf("%s invited you to join %q", requester.Name, group.Name)
	body := fmt.Sprintf(
		"%s invited you to share the fridge group %q.\r\n\r\n"+
			"Join here: %s\r\n\r\n"+
			"The link is valid until %s.\r\n",
		requester.Name, group.Name, link,
		group.InviteCodeExpiresAt.Format("Jan 2, 2006 15:04 MST"),
	)
	return s.mailer.Send(ctx, email, subject, body)
}

// InviteLink builds the shareable join URL for a code.
func (s *groupService) InviteLink(code string) string {
	return s.baseURL + "/join/" + code
}
