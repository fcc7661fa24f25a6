package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"church-platform/internal/auth"
	"church-platform/internal/domain"
)

// Lockout policy: five strikes inside a lock window, then a two-hour lock.
// Bounded brute-force resistance without permanent lockout.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

// Stable user-facing messages for authentication outcomes. Bad email and bad
// password produce the identical message to avoid user enumeration.
const (
	MsgBadCredentials  = "invalid email or password"
	MsgAccountLocked   = "account temporarily locked after too many failed login attempts"
	MsgAccountInactive = "account is not active, contact an administrator"
)

// AuthService implements registration, login with lockout tracking, and
// password management on top of the credential store.
type AuthService struct {
	users  domain.UserRepository
	audit  *AuditService
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users domain.UserRepository,
	audit *AuditService,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		audit:  audit,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a new account and returns it with a freshly issued token.
// The password is hashed here, before the record is constructed; the stored
// user never holds plaintext.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, "", domain.ErrConflict("an account with this email already exists")
	} else if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("lookup email: %w", err)
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       domain.StatusActive,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditCreate,
		Action:       "user registered",
		Description:  fmt.Sprintf("user %s registered", user.Name),
		ActorID:      user.ID,
		ResourceType: "user",
		ResourceID:   user.ID,
	})

	return user, token, nil
}

// Login authenticates credentials and returns the user with a new token.
//
// Order matters: the lock check runs before the password is verified, so a
// correct password during a lock neither logs the user in nor resets the
// counter. The attempt counter moves only on an actual verification failure,
// and counter writes are best-effort: a store error there never changes the
// authentication outcome.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, "", domain.ErrUnauthorized(MsgBadCredentials)
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, "", domain.ErrLocked(MsgAccountLocked)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.recordFailedAttempt(ctx, user, now)
		s.audit.Record(ctx, domain.AuditEntry{
			Kind:        domain.AuditLogin,
			Action:      "login failed",
			Description: fmt.Sprintf("failed login for %s", user.Email),
			ActorID:     user.ID,
		})
		return nil, "", domain.ErrUnauthorized(MsgBadCredentials)
	}

	if user.Status != domain.StatusActive {
		return nil, "", domain.ErrUnauthorized(MsgAccountInactive)
	}

	// Success. An attempt arriving after a lock expired counts as the first
	// new strike even when it succeeds: the counter seeds at 1, not 0.
	attempts := 0
	if user.LockUntil != nil && !user.LockUntil.After(now) {
		attempts = 1
	}
	if err := s.users.RecordLogin(ctx, user.ID, attempts, now); err != nil {
		s.logger.Warn("record login failed", "user", user.ID, "error", err)
	}
	user.LoginAttempts = attempts
	user.LockUntil = nil
	user.LastLogin = &now

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Kind:        domain.AuditLogin,
		Action:      "login",
		Description: fmt.Sprintf("user %s logged in", user.Name),
		ActorID:     user.ID,
	})

	return user, token, nil
}

// recordFailedAttempt advances the lockout state machine after a password
// verification failure. An attempt arriving after a lock expired clears the
// lock but seeds the counter at 1. It is the first new strike, not a clean
// slate. Once a failure lands the counter at MaxLoginAttempts-1 the lock is
// applied, so the next attempt is already rejected as locked before its
// credentials are considered.
func (s *AuthService) recordFailedAttempt(ctx context.Context, user *domain.User, now time.Time) {
	attempts := user.LoginAttempts + 1
	var lockUntil *time.Time

	if user.LockUntil != nil && !user.LockUntil.After(now) {
		attempts = 1
	} else if attempts >= MaxLoginAttempts-1 {
		t := now.Add(LockDuration)
		lockUntil = &t
	}

	if err := s.users.SetAttempts(ctx, user.ID, attempts, lockUntil); err != nil {
		s.logger.Warn("update login attempts failed", "user", user.ID, "error", err)
	}
}

// Logout records a logout event. Tokens cannot be revoked server-side, so
// this is an audit artifact only; the client discards the token.
func (s *AuthService) Logout(ctx context.Context, actor domain.ContextUser) {
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:        domain.AuditLogout,
		Action:      "logout",
		Description: fmt.Sprintf("user %s logged out", actor.Name),
		ActorID:     actor.ID,
	})
}

// VerifyToken checks a raw token and returns the account it belongs to.
// Backs the verify-token endpoint; the request-path equivalent lives in the
// authentication middleware.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, domain.ErrUnauthorized("token expired, please log in again")
		}
		return nil, domain.ErrUnauthorized("invalid token")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrUnauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrUnauthorized(MsgAccountInactive)
	}
	return user, nil
}

// Me returns the account for the authenticated user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes the caller's own name and phone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	return s.users.Update(ctx, user)
}

// ChangePassword verifies the current password and stores a hash of the new
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrValidation("current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "password changed",
		Description:  "user changed their password",
		ActorID:      userID,
		ResourceType: "user",
		ResourceID:   userID,
	})
	return nil
}
