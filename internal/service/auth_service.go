package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/conveyancing-service/internal/auth"
	"github.com/spec-kit/conveyancing-service/internal/config"
	"github.com/spec-kit/conveyancing-service/internal/domain"
	"github.com/spec-kit/conveyancing-service/internal/repository"
	apperrors "github.com/spec-kit/conveyancing-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users        repository.UserRepository
	throttle     LoginThrottle
	tokenMgr     *auth.TokenManager
	hasher       auth.PasswordHasher
	attemptLimit int
}

// AuthDependencies encapsulates requirements for the auth service. Throttle
// is optional; without it failed-login throttling is disabled.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Throttle LoginThrottle
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		throttle:     deps.Throttle,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		hasher:       auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		attemptLimit: cfg.Auth.LoginAttemptLimit,
	}
}

// Register creates a new account. The admin flag is honored exactly as
// submitted by the unauthenticated caller; see DESIGN.md for the recorded
// elevation risk.
func (s *AuthService) Register(ctx context.Context, username, email, password string, isAdmin bool) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a signed token. Unknown emails and
// wrong passwords fail identically so the response never reveals whether an
// account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if s.tooManyFailures(ctx, email) {
		return nil, "", time.Time{}, apperrors.NewRateLimited("too many failed login attempts")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.recordFailure(ctx, email)
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	s.clearFailures(ctx, email)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// tooManyFailures checks the per-email failure counter. Throttling fails
// open: a counter backend error is treated as zero failures.
func (s *AuthService) tooManyFailures(ctx context.Context, email string) bool {
	if !s.throttleEnabled() {
		return false
	}
	count, err := s.throttle.Failures(ctx, email)
	if err != nil {
		return false
	}
	return count >= s.attemptLimit
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttleEnabled() {
		_ = s.throttle.RecordFailure(ctx, email)
	}
}

func (s *AuthService) clearFailures(ctx context.Context, email string) {
	if s.throttleEnabled() {
		_ = s.throttle.Reset(ctx, email)
	}
}

func (s *AuthService) throttleEnabled() bool {
	return s.throttle != nil && s.attemptLimit > 0
}
