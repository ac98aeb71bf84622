package service

import "errors"

var (
	ErrNameRequired         = errors.New("group name is required")
	ErrFridgeRequired       = errors.New("fridge reference is required")
	ErrGroupNotFound        = errors.New("group not found")
	ErrInviteCodeInvalid    = errors.New("invalid invite code")
	ErrInviteCodeExpired    = errors.New("invite code expired")
	ErrInviteCodeExhausted  = errors.New("invite code generation exhausted")
	ErrAlreadyMember        = errors.New("already a member of this group")
	ErrNotOwner             = errors.New("only the group owner may do this")
	ErrNotMember            = errors.New("not a member of this group")
	ErrOwnerCannotLeave     = errors.New("the owner cannot leave the group")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrRefreshTokenInvalid    = errors.New("refresh token invalid or revoked")
	ErrUserNotFound           = errors.New("user not found")
)
