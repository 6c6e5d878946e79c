package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements registration, login, session restore and role promotion.
type AuthService struct {
	repo    ports.UserRepository
	tokens  *TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths spend the same bcrypt time.
	dummyHash []byte
}

// NewAuthService builds an AuthService. limiter may be nil to disable throttling.
func NewAuthService(repo ports.UserRepository, tokens *TokenIssuer, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("townboard-dummy-password"), bcrypt.DefaultCost)
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log, dummyHash: dummy}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	email := domain.NormalizeEmail(in.Email)
	displayName := strings.TrimSpace(in.DisplayName)
	switch {
	case email == "":
		return nil, domain.Invalid("email is required")
	case !strings.Contains(email, "@"):
		return nil, domain.Invalid("email must be a valid email")
	case in.Password == "":
		return nil, domain.Invalid("password is required")
	case len(in.Password) > maxPasswordBytes:
		return nil, domain.Invalid("password must be at most 72 bytes")
	case displayName == "":
		return nil, domain.Invalid("displayName is required")
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return s.session(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, continuing")
	} else if !allowed {
		return nil, domain.ErrLoginThrottled
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || user == nil {
		if ferr := s.limiter.RecordFailure(ctx, email); ferr != nil {
			s.log.Warn().Err(ferr).Msg("failed to record login failure")
		}
		return nil, domain.ErrInvalidCredentials
	}

	if rerr := s.limiter.Reset(ctx, email); rerr != nil {
		s.log.Warn().Err(rerr).Msg("failed to reset login failures")
	}
	return s.session(user)
}

// Me restores a session: the token is already verified, the identity must
// still exist.
func (s *AuthService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	user, err := s.repo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpgradeToBusiness promotes a local account. A second call fails with
// ErrAlreadyBusiness and leaves the role untouched.
func (s *AuthService) UpgradeToBusiness(ctx context.Context, p domain.Principal) (*ports.Session, error) {
	user, err := s.Me(ctx, p)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleBusiness {
		return nil, domain.ErrAlreadyBusiness
	}

	ok, err := s.repo.PromoteRole(ctx, user.ID, domain.RoleLocal, domain.RoleBusiness)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyBusiness
	}

	user.Role = domain.RoleBusiness
	user.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("user_id", user.ID).Msg("user upgraded to business")
	return s.session(user)
}

func (s *AuthService) session(user *domain.User) (*ports.Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, User: user}, nil
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error  { return nil }
func (noopLimiter) Reset(context.Context, string) error          { return nil }
