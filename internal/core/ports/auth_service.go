package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// Session is a freshly minted token together with the identity it belongs to.
type Session struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Me(ctx context.Context, p domain.Principal) (*domain.User, error)
	UpgradeToBusiness(ctx context.Context, p domain.Principal) (*Session, error)
}

// TokenVerifier validates a raw session token and returns its principal.
type TokenVerifier interface {
	Verify(raw string) (domain.Principal, error)
}
