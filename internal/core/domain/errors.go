package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns either wraps one of these or is
// treated as internal by the transport layer.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrMissingToken       = fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)
	ErrMalformedToken     = fmt.Errorf("%w: authorization header must be Bearer <token>", ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrMissingPrincipal   = fmt.Errorf("%w: missing authentication", ErrUnauthenticated)

	ErrUserExists      = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAlreadyBusiness = fmt.Errorf("%w: account is already a business account", ErrConflict)

	ErrUserNotFound  = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEventNotFound = fmt.Errorf("%w: event not found", ErrNotFound)
	ErrPostNotFound  = fmt.Errorf("%w: post not found", ErrNotFound)

	ErrNotOwner     = fmt.Errorf("%w: not allowed to edit or delete this resource", ErrForbidden)
	ErrRoleRequired = fmt.Errorf("%w: insufficient role", ErrForbidden)

	ErrLoginThrottled = fmt.Errorf("%w: too many failed login attempts, try again later", ErrTooManyRequests)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Invalid builds an ErrInvalidInput carrying a field-level message.
func Invalid(msg string) error {
	return invalidf("%s", msg)
}

var kindCodes = []struct {
	kind error
	code string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrUnauthenticated, "unauthenticated"},
	{ErrForbidden, "forbidden"},
	{ErrNotFound, "not_found"},
	{ErrConflict, "conflict"},
	{ErrTooManyRequests, "too_many_requests"},
}

// CodeInternal is the code of any error that wraps no known kind.
const CodeInternal = "internal"

// Kind returns the machine-readable code of err and the sentinel it wraps, or
// (CodeInternal, nil) when err carries no known kind.
func Kind(err error) (string, error) {
	for _, k := range kindCodes {
		if errors.Is(err, k.kind) {
			return k.code, k.kind
		}
	}
	return CodeInternal, nil
}

// Code is Kind without the sentinel.
func Code(err error) string {
	code, _ := Kind(err)
	return code
}
