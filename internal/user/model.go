package user

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrNameRequired     = apperror.Validation("name is required")
	ErrEmailRequired    = apperror.Validation("email is required")
	ErrEmailInvalid     = apperror.Validation("email is invalid")
)

// User represents a user in the system.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// Filter defines options for listing users.
type Filter struct {
	From int
	Size int
}
