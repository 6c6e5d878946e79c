package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the coarse permission tag carried by every identity.
type Role string

const (
	RoleLocal    Role = "local"
	RoleBusiness Role = "business"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleLocal || r == RoleBusiness
}

// ParseRole resolves a requested role. An empty value defaults to RoleLocal;
// anything else must match a known role exactly.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if role == "" {
		return RoleLocal, nil
	}
	if !role.Valid() {
		return "", invalidf("role must be one of: local, business")
	}
	return role, nil
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail returns the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal is the authenticated caller attached to a request by the token
// verifier. It is the only identity input the services accept.
type Principal struct {
	UserID string
	Role   Role
}

// Authenticated reports whether p carries an identity.
func (p Principal) Authenticated() bool {
	return strings.TrimSpace(p.UserID) != ""
}

type principalCtxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok && p.Authenticated()
}
