package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}
