package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/notesapp/notes-api/internal/auth"
	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/repository"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
}

func NewAuthUsecase(users repository.UserRepository, tokens *auth.TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

// Register hashes the password and persists a new user. A taken username
// or email yields domain.ErrUserExists; the database unique constraint
// backs the pre-insert check against concurrent registrations.
func (u *AuthUsecase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	taken, err := u.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and returns a signed bearer token with the
// username as subject. An unknown username and a wrong password are
// indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
