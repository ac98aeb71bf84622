package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fridgehub/groups/internal/service"
	"fridgehub/groups/pkg/response"
)

type GroupHandler struct {
	groupService      service.GroupService
	membershipService service.MembershipService
}

func NewGroupHandler(groupService service.GroupService, membershipService service.MembershipService) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		membershipService: membershipService,
	}
}

type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	FridgeID string `json:"fridgeId" binding:"required"`
}

type EmailInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type GroupSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Owner       uuid.UUID `json:"owner"`
	MemberCount int64     `json:"memberCount"`
	InviteCode  string    `json:"inviteCode"`
	InviteLink  string    `json:"inviteLink"`
}

type MemberResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsOwner bool      `json:"isOwner"`
}

// POST /api/v1/groups
func (h *GroupHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), userID, req.Name, req.FridgeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrFridgeRequired):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrInviteCodeExhausted):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to create group")
		}
		return
	}

	response.Created(c, gin.H{
		"id":         group.ID,
		"name":       group.Name,
		"inviteCode": group.InviteCode,
		"inviteLink": h.groupService.InviteLink(group.InviteCode),
	})
}

// GET /api/v1/groups/my-groups
func (h *GroupHandler) MyGroups(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	summaries, err := h.groupService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to list groups")
		return
	}

	groups := make([]GroupSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		groups = append(groups, GroupSummaryResponse{
			ID:          s.Group.ID,
			Name:        s.Group.Name,
			Owner:       s.Group.OwnerID,
			MemberCount: s.MemberCount,
			InviteCode:  s.Group.InviteCode,
			InviteLink:  h.groupService.InviteLink(s.Group.InviteCode),
		})
	}

	response.Success(c, gin.H{"groups": groups})
}

// POST /api/v1/groups/:groupId/regenerate-invite
func (h *GroupHandler) RegenerateInvite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	group, err := h.groupService.RegenerateInviteCode(c.Request.Context(), groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrInviteCodeExhausted):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to regenerate invite code")
		}
		return
	}

	response.Success(c, gin.H{
		"inviteCode": group.InviteCode,
		"inviteLink": h.groupService.InviteLink(group.InviteCode),
	})
}

// GET /api/v1/groups/by-invite/:code
func (h *GroupHandler) PreviewInvite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	preview, err := h.membershipService.PreviewByInviteCode(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		h.writeInviteError(c, err, "failed to resolve invite code")
		return
	}

	response.Success(c, gin.H{
		"groupId":     preview.GroupID,
		"name":        preview.Name,
		"memberCount": preview.MemberCount,
		"ownerName":   preview.OwnerName,
	})
}

// POST /api/v1/groups/join/:code
func (h *GroupHandler) Join(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	result, err := h.membershipService.JoinByInviteCode(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		h.writeInviteError(c, err, "failed to join group")
		return
	}

	response.Success(c, gin.H{
		"success": result.Created,
		"group": gin.H{
			"id":   result.Group.ID,
			"name": result.Group.Name,
		},
	})
}

// GET /api/v1/groups/:groupId/members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	list, err := h.membershipService.ListMembers(c.Request.Context(), groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotMember):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to list members")
		}
		return
	}

	members := make([]MemberResponse, 0, len(list.Members))
	for _, m := range list.Members {
		members = append(members, MemberResponse{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			IsOwner: m.IsOwner,
		})
	}

	response.Success(c, gin.H{
		"groupId":   list.GroupID,
		"groupName": list.GroupName,
		"members":   members,
	})
}

// POST /api/v1/groups/:groupId/leave
func (h *GroupHandler) Leave(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	if err := h.membershipService.Leave(c.Request.Context(), groupID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrOwnerCannotLeave):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrNotMember):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to leave group")
		}
		return
	}

	response.Success(c, nil)
}

// POST /api/v1/groups/:groupId/email-invite
func (h *GroupHandler) EmailInvite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	var req EmailInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.groupService.EmailInvite(c.Request.Context(), groupID, userID, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotMember):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to send invite email")
		}
		return
	}

	response.Success(c, nil)
}

// writeInviteError maps invite-code resolution failures. Unknown and
// superseded codes are the same 404; an expired-but-current code is 410 so
// the client can tell the owner to rotate it.
func (h *GroupHandler) writeInviteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInviteCodeInvalid):
		response.NotFound(c, "invalid invite code")
	case errors.Is(err, service.ErrInviteCodeExpired):
		response.Gone(c, "invite code expired")
	case errors.Is(err, service.ErrAlreadyMember):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, fallback)
	}
}
