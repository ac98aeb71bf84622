package repository

import (
	"context"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
)

type UserRepository interface {
	// Create returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
