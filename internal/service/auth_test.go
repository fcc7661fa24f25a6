package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"church-platform/internal/auth"
	"church-platform/internal/domain"
)

// === Stub credential store ===

type stubUserRepo struct {
	byID            map[string]*domain.User
	failSetAttempts bool
	failRecordLogin bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrConflict("email already exists")
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("no user with email %s", email)
}

func (r *stubUserRepo) List(_ context.Context, _ domain.PageRequest) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrNotFound("user %s not found", u.ID)
	}
	cp := *u
	r.byID[u.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound("user %s not found", id)
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) SetAttempts(_ context.Context, id string, attempts int, lockUntil *time.Time) error {
	if r.failSetAttempts {
		return fmt.Errorf("store unavailable")
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound("user %s not found", id)
	}
	u.LoginAttempts = attempts
	u.LockUntil = lockUntil
	return nil
}

func (r *stubUserRepo) RecordLogin(_ context.Context, id string, attempts int, lastLogin time.Time) error {
	if r.failRecordLogin {
		return fmt.Errorf("store unavailable")
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound("user %s not found", id)
	}
	u.LoginAttempts = attempts
	u.LockUntil = nil
	u.LastLogin = &lastLogin
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound("user %s not found", id)
	}
	u.PasswordHash = hash
	return nil
}

var _ domain.UserRepository = (*stubUserRepo)(nil)

// === Stub audit sink ===

type stubAuditRepo struct {
	entries []domain.AuditEntry
	failAll bool
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if r.failAll {
		return fmt.Errorf("audit sink down")
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, _ domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *stubAuditRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []domain.AuditEntry
	var removed int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

var _ domain.AuditRepository = (*stubAuditRepo)(nil)

// === Harness ===

type authFixture struct {
	svc   *AuthService
	users *stubUserRepo
	audit *stubAuditRepo
	now   time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := newStubUserRepo()
	auditRepo := &stubAuditRepo{}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	f := &authFixture{
		users: users,
		audit: auditRepo,
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	auditSvc := NewAuditService(auditRepo, logger)
	auditSvc.now = func() time.Time { return f.now }
	f.svc = NewAuthService(users, auditSvc, hasher, tokens, logger)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *authFixture) register(t *testing.T, email, password string) *domain.User {
	t.Helper()
	u, token, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return u
}

func (f *authFixture) login(email, password string) (*domain.User, string, error) {
	return f.svc.Login(context.Background(), domain.LoginRequest{Email: email, Password: password})
}

// === Tests ===

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@b.com", "secret1")

	_, _, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Other", Email: "A@B.COM", Password: "secret2",
	})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict, "email uniqueness is case-insensitive")
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	stored := f.users.byID[u.ID]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret1")
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	got, token, err := f.login("a@b.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, 0, got.LoginAttempts)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(f.now))
}

func TestLogin_UnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@b.com", "secret1")

	_, _, errUnknown := f.login("nobody@b.com", "secret1")
	_, _, errWrong := f.login("a@b.com", "wrong")

	var ua, ub *domain.UnauthorizedError
	require.ErrorAs(t, errUnknown, &ua)
	require.ErrorAs(t, errWrong, &ub)
	assert.Equal(t, ua.Message, ub.Message, "responses must not reveal whether the email exists")
}

func TestLogin_InactiveAccountRejected(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")
	f.users.byID[u.ID].Status = domain.StatusInactive

	_, _, err := f.login("a@b.com", "secret1")
	var unauthorized *domain.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, MsgAccountInactive, unauthorized.Message)
}

func TestLogin_LockoutScenario(t *testing.T) {
	// Four wrong passwords: each is a 401 credential error and the counter
	// climbs 1 through 4. The fifth attempt, even with the correct password,
	// is rejected as locked.
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	for i := 1; i <= 4; i++ {
		_, _, err := f.login("a@b.com", "wrong")
		var unauthorized *domain.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized, "attempt %d", i)
		assert.Equal(t, i, f.users.byID[u.ID].LoginAttempts, "attempt %d", i)
	}
	require.NotNil(t, f.users.byID[u.ID].LockUntil)

	_, _, err := f.login("a@b.com", "secret1")
	var locked *domain.LockedError
	assert.ErrorAs(t, err, &locked, "correct credentials during a lock must not log in")
	assert.Equal(t, 4, f.users.byID[u.ID].LoginAttempts,
		"a rejected-while-locked attempt must not move the counter")
}

func TestLogin_LockedUntilWindowElapses(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@b.com", "secret1")

	for i := 0; i < 4; i++ {
		_, _, _ = f.login("a@b.com", "wrong")
	}

	// Still locked just before the window closes.
	f.now = f.now.Add(LockDuration - time.Minute)
	_, _, err := f.login("a@b.com", "secret1")
	var locked *domain.LockedError
	require.ErrorAs(t, err, &locked)

	// Open again once the window has elapsed.
	f.now = f.now.Add(2 * time.Minute)
	_, _, err = f.login("a@b.com", "secret1")
	assert.NoError(t, err)
}

func TestLogin_SuccessAfterExpiredLockSeedsOneStrike(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	for i := 0; i < 4; i++ {
		_, _, _ = f.login("a@b.com", "wrong")
	}
	require.NotNil(t, f.users.byID[u.ID].LockUntil)

	f.now = f.now.Add(LockDuration + time.Second)
	got, _, err := f.login("a@b.com", "secret1")
	require.NoError(t, err, "a successful login after the lock expires must not error")
	assert.Equal(t, 1, got.LoginAttempts, "expiry seeds the counter at 1, not 0")
	assert.Nil(t, f.users.byID[u.ID].LockUntil)
}

func TestLogin_FailureAfterExpiredLockSeedsOneStrike(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	for i := 0; i < 4; i++ {
		_, _, _ = f.login("a@b.com", "wrong")
	}

	f.now = f.now.Add(LockDuration + time.Second)
	_, _, err := f.login("a@b.com", "wrong")
	var unauthorized *domain.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, 1, f.users.byID[u.ID].LoginAttempts)
	assert.Nil(t, f.users.byID[u.ID].LockUntil)
}

func TestLogin_CounterWriteFailureDoesNotChangeOutcome(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@b.com", "secret1")
	f.users.failSetAttempts = true

	_, _, err := f.login("a@b.com", "wrong")
	var unauthorized *domain.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized,
		"a failed counter update must still yield the credential error")

	f.users.failRecordLogin = true
	_, token, err := f.login("a@b.com", "secret1")
	assert.NoError(t, err, "a failed last-login update must not block the login")
	assert.NotEmpty(t, token)
}

func TestLogin_AuditSinkFailureDoesNotChangeOutcome(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@b.com", "secret1")
	f.audit.failAll = true

	_, token, err := f.login("a@b.com", "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_RecordsAuditEntries(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	_, _, _ = f.login("a@b.com", "wrong")
	_, _, err := f.login("a@b.com", "secret1")
	require.NoError(t, err)

	var kinds []string
	for _, e := range f.audit.entries {
		if e.ActorID == u.ID && e.Kind == domain.AuditLogin {
			kinds = append(kinds, e.Action)
		}
	}
	assert.Contains(t, kinds, "login failed")
	assert.Contains(t, kinds, "login")
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	err := f.svc.ChangePassword(context.Background(), u.ID, domain.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "secret2",
	})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	err = f.svc.ChangePassword(context.Background(), u.ID, domain.ChangePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "secret2",
	})
	require.NoError(t, err)

	_, _, err = f.login("a@b.com", "secret2")
	assert.NoError(t, err)
}

func TestVerifyIssueRoundTripThroughService(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@b.com", "secret1")

	_, token, err := f.login("a@b.com", "secret1")
	require.NoError(t, err)

	subject, err := f.svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)
}
