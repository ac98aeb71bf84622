package repository

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateInviteCode = errors.New("invite code already exists")
	ErrDuplicateMember     = errors.New("member already exists")
	ErrDuplicateEmail      = errors.New("email already exists")
)
