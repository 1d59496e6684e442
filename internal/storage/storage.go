package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/platform-accounts/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by the account flows.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	// UpdatePlatforms writes only the given fields and stamps platforms_setup_at.
	UpdatePlatforms(ctx context.Context, id int64, fields models.PlatformFields) (models.User, error)
	Ping(ctx context.Context) error
}
