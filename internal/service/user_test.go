package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"church-platform/internal/domain"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubAuditRepo) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := newStubUserRepo()
	auditRepo := &stubAuditRepo{}
	return NewUserService(users, NewAuditService(auditRepo, logger)), users, auditRepo
}

func seedUser(t *testing.T, repo *stubUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Name:   "Seeded User",
		Email:  email,
		Role:   role,
		Status: domain.StatusActive,
	})
	require.NoError(t, err)
	return u
}

func TestUserDelete_SelfDeleteRejected(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)

	err := svc.Delete(context.Background(), domain.ContextUserFrom(admin), admin.ID)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	_, stillThere := users.byID[admin.ID]
	assert.True(t, stillThere)
}

func TestUserDelete_OtherAccount(t *testing.T) {
	svc, users, auditRepo := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)
	victim := seedUser(t, users, "member@church.org", domain.RoleMember)

	err := svc.Delete(context.Background(), domain.ContextUserFrom(admin), victim.ID)
	require.NoError(t, err)
	_, stillThere := users.byID[victim.ID]
	assert.False(t, stillThere)
	require.NotEmpty(t, auditRepo.entries)
	assert.Equal(t, domain.AuditDelete, auditRepo.entries[len(auditRepo.entries)-1].Kind)
}

func TestUserDelete_UnknownID(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)

	err := svc.Delete(context.Background(), domain.ContextUserFrom(admin), "missing")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)
	target := seedUser(t, users, "member@church.org", domain.RoleMember)

	taken := "admin@church.org"
	_, err := svc.Update(context.Background(), domain.ContextUserFrom(admin), target.ID,
		domain.UpdateUserRequest{Email: &taken})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserUpdate_RoleAndStatus(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)
	target := seedUser(t, users, "member@church.org", domain.RoleMember)

	role := domain.RolePastor
	status := domain.StatusSuspended
	updated, err := svc.Update(context.Background(), domain.ContextUserFrom(admin), target.ID,
		domain.UpdateUserRequest{Role: &role, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePastor, updated.Role)
	assert.Equal(t, domain.StatusSuspended, updated.Status)
}

func TestUserUpdate_InvalidRoleRejected(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	admin := seedUser(t, users, "admin@church.org", domain.RoleAdmin)
	target := seedUser(t, users, "member@church.org", domain.RoleMember)

	bad := domain.Role("superuser")
	_, err := svc.Update(context.Background(), domain.ContextUserFrom(admin), target.ID,
		domain.UpdateUserRequest{Role: &bad})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}
