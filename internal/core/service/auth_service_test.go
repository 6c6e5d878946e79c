package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) PromoteRole(_ context.Context, id string, from, to domain.Role) (bool, error) {
	for _, u := range r.users {
		if u.ID == id {
			if u.Role != from {
				return false, nil
			}
			u.Role = to
			return true, nil
		}
	}
	return false, domain.ErrUserNotFound
}

type stubLimiter struct {
	failures map[string]int
	max      int
}

func (l *stubLimiter) Allow(_ context.Context, email string) (bool, error) {
	return l.failures[email] < l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	delete(l.failures, email)
	return nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("secret", time.Hour, ""), nil, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, email, role string) string {
	t.Helper()
	sess, err := svc.Register(context.Background(), registerInput(email, "Secret123!", role))
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return sess.User.ID
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	sess, err := svc.Register(context.Background(), registerInput("  Alice@Example.com ", "pass123", ""))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected token")
	}
	user := sess.User
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.Role != domain.RoleLocal {
		t.Fatalf("expected default role local, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := map[string]struct {
		email, password, name, role string
	}{
		"missing email":    {"", "pass", "Al", ""},
		"malformed email":  {"alice", "pass", "Al", ""},
		"missing password": {"a@x.com", "", "Al", ""},
		"missing name":     {"a@x.com", "pass", "  ", ""},
		"unknown role":     {"a@x.com", "pass", "Al", "admin"},
		"capitalised role": {"a@x.com", "pass", "Al", "Business"},
		"long password":    {"a@x.com", strings.Repeat("p", 73), "Al", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := registerInput(tc.email, tc.password, tc.role)
			in.DisplayName = tc.name
			if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateIsCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	register(t, svc, "bob@example.com", "")
	_, err := svc.Register(context.Background(), registerInput("BOB@example.COM", "other", ""))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	id := register(t, svc, "carol@example.com", "business")

	sess, err := svc.Login(context.Background(), "Carol@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(sess.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != id || claims.Role != domain.RoleBusiness {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_FailuresLookTheSame(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	register(t, svc, "dave@example.com", "")

	_, wrongPassword := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "badpass")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) || !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{failures: map[string]int{}, max: 2}
	svc := NewAuthService(repo, NewTokenIssuer("secret", time.Hour, ""), limiter, zerolog.Nop())
	register(t, svc, "erin@example.com", "")

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "erin@example.com", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i, err)
		}
	}
	if _, err := svc.Login(context.Background(), "erin@example.com", "Secret123!"); !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected throttling, got %v", err)
	}

	limiter.failures = map[string]int{"erin@example.com": 1}
	if _, err := svc.Login(context.Background(), "erin@example.com", "Secret123!"); err != nil {
		t.Fatalf("expected success under the limit, got %v", err)
	}
	if _, ok := limiter.failures["erin@example.com"]; ok {
		t.Fatalf("expected failures reset after success")
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	id := register(t, svc, "frank@example.com", "")

	user, err := svc.Me(context.Background(), domain.Principal{UserID: id, Role: domain.RoleLocal})
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if user.Email != "frank@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Me(context.Background(), domain.Principal{UserID: "missing"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for vanished user, got %v", err)
	}
}

func TestAuthService_UpgradeToBusiness(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	id := register(t, svc, "gina@example.com", "")
	p := domain.Principal{UserID: id, Role: domain.RoleLocal}

	sess, err := svc.UpgradeToBusiness(context.Background(), p)
	if err != nil {
		t.Fatalf("first upgrade failed: %v", err)
	}
	if sess.User.Role != domain.RoleBusiness {
		t.Fatalf("expected business role, got %s", sess.User.Role)
	}
	upgraded, err := svc.tokens.Verify(sess.Token)
	if err != nil || upgraded.Role != domain.RoleBusiness {
		t.Fatalf("expected fresh business token, got %+v / %v", upgraded, err)
	}

	if _, err := svc.UpgradeToBusiness(context.Background(), p); !errors.Is(err, domain.ErrAlreadyBusiness) {
		t.Fatalf("expected ErrAlreadyBusiness, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), id)
	if stored.Role != domain.RoleBusiness {
		t.Fatalf("role changed after second upgrade: %s", stored.Role)
	}
}

func registerInput(email, password, role string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, DisplayName: strings.SplitN(email, "@", 2)[0] + " name", Role: role}
}
