package repository

import (
	"context"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Read methods populate the JoinedEvents, CreatedEvents, Donations and BlogPosts projections.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByIDs returns the users that exist among ids; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// UpdateProfile locks the user, hands the current row to fn and writes back the profile
	// columns only. Credentials, role and verification are never written. An error from fn
	// aborts without writing.
	UpdateProfile(ctx context.Context, id string, fn func(u *entity.User) error) (*entity.User, error)
}
