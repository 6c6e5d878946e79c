package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for identities.
// Emails are stored and looked up in their normalised form.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// PromoteRole switches the user to role only if they currently hold from.
	// It reports false when the user exists but did not hold from.
	PromoteRole(ctx context.Context, id string, from, to domain.Role) (bool, error)
}

// LoginLimiter throttles repeated failed logins for the same account.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
