package repository

import (
	"context"

	"github.com/notesapp/notes-api/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. A username or email collision returns
	// domain.ErrUserExists, including when lost to a concurrent insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail is the combined pre-insert conflict check.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
