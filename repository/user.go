package repository

import (
	"context"

	"github.com/fastygo/taskie/domain"
)

type UserRepository interface {
	// Create stores a new user; it fails with domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
