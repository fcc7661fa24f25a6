package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"church-platform/internal/app"
	"church-platform/internal/config"
	"church-platform/internal/db"
)

// newTestServer wires the real application (services, repositories, router)
// over a migrated temp-file SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	writeDB, readDB := db.OpenTestSQLite(t)

	cfg := &config.Config{
		JWTSecret:          "handler-test-secret",
		TokenTTL:           time.Hour,
		BcryptCost:         4, // min cost keeps the suite fast
		AuditRetention:     180 * 24 * time.Hour,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
	}

	application, err := app.New(app.Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	server := httptest.NewServer(application.Router())
	t.Cleanup(server.Close)
	return server
}

type apiResponse struct {
	status int
	body   map[string]any
}

func do(t *testing.T, server *httptest.Server, method, path, token string, payload any) apiResponse {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.body), "body: %s", raw)
	}
	return out
}

func register(t *testing.T, server *httptest.Server, name, email, password, role string) (userID, token string) {
	t.Helper()
	resp := do(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password, "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.status, "register %s: %v", email, resp.body)
	user := resp.body["user"].(map[string]any)
	return user["id"].(string), resp.body["token"].(string)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	server := newTestServer(t)

	userID, regToken := register(t, server, "Ana Souza", "ana@church.org", "secret1", "")
	require.NotEmpty(t, regToken)

	resp := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ANA@church.org", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.status)
	token := resp.body["token"].(string)
	user := resp.body["user"].(map[string]any)
	assert.Equal(t, "ana@church.org", user["email"], "email lowercased on write")
	assert.Equal(t, "member", user["role"], "register defaults to member")
	_, hasHash := user["password_hash"]
	assert.False(t, hasHash, "responses must never carry the hash")

	resp = do(t, server, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, userID, resp.body["id"])
}

func TestLoginLockoutEndToEnd(t *testing.T) {
	server := newTestServer(t)
	register(t, server, "Bruno Lima", "bruno@church.org", "secret1", "")

	for i := 1; i <= 4; i++ {
		resp := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "bruno@church.org", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.status, "attempt %d", i)
		assert.Equal(t, "invalid email or password", resp.body["message"], "attempt %d", i)
	}

	// Correct password, but the account is now locked.
	resp := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "bruno@church.org", "password": "secret1",
	})
	assert.Equal(t, http.StatusLocked, resp.status)
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	server := newTestServer(t)
	register(t, server, "Carla Dias", "carla@church.org", "secret1", "")

	unknown := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@church.org", "password": "secret1",
	})
	wrongPassword := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "carla@church.org", "password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.status)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.status)
	assert.Equal(t, unknown.body["message"], wrongPassword.body["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/auth/me", "/api/members/", "/api/events/", "/api/settings/"} {
		resp := do(t, server, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.status, path)
		assert.Equal(t, "no token provided", resp.body["message"], path)
	}
}

func TestVerifyTokenEndpoint(t *testing.T) {
	server := newTestServer(t)
	_, token := register(t, server, "Davi Rocha", "davi@church.org", "secret1", "")

	resp := do(t, server, http.MethodPost, "/api/auth/verify-token", "", map[string]string{
		"token": token,
	})
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, true, resp.body["valid"])

	resp = do(t, server, http.MethodPost, "/api/auth/verify-token", "", map[string]string{
		"token": "garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "invalid token", resp.body["message"])
}

func TestUserAdminGates(t *testing.T) {
	server := newTestServer(t)
	_, adminToken := register(t, server, "Admin", "admin@church.org", "secret1", "admin")
	memberID, memberToken := register(t, server, "Member", "member@church.org", "secret1", "")
	_, pastorToken := register(t, server, "Pastor", "pastor@church.org", "secret1", "pastor")

	// Listing is leadership-gated.
	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodGet, "/api/auth/users", memberToken, nil).status)
	assert.Equal(t, http.StatusOK,
		do(t, server, http.MethodGet, "/api/auth/users", pastorToken, nil).status)

	// Editing and deleting are admin-only.
	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodPut, "/api/auth/users/"+memberID, pastorToken,
			map[string]string{"role": "leader"}).status)

	resp := do(t, server, http.MethodPut, "/api/auth/users/"+memberID, adminToken,
		map[string]string{"role": "leader"})
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "leader", resp.body["role"])

	assert.Equal(t, http.StatusOK,
		do(t, server, http.MethodDelete, "/api/auth/users/"+memberID, adminToken, nil).status)
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	server := newTestServer(t)
	adminID, adminToken := register(t, server, "Admin", "admin@church.org", "secret1", "admin")

	resp := do(t, server, http.MethodDelete, "/api/auth/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestMemberOwnershipGate(t *testing.T) {
	server := newTestServer(t)
	_, adminToken := register(t, server, "Admin", "admin@church.org", "secret1", "admin")
	_, ownerToken := register(t, server, "Owner", "owner@church.org", "secret1", "leader")
	_, otherToken := register(t, server, "Other", "other@church.org", "secret1", "leader")

	created := do(t, server, http.MethodPost, "/api/members/", ownerToken, map[string]any{
		"first_name": "Jose", "last_name": "Santos",
		"birth_date": "1975-05-20T00:00:00Z", "gender": "M",
		"marital_status": "married",
	})
	require.Equal(t, http.StatusCreated, created.status, "%v", created.body)
	memberID := created.body["id"].(string)

	update := map[string]any{
		"first_name": "Jose", "last_name": "Santos",
		"birth_date": "1975-05-20T00:00:00Z", "gender": "M",
		"marital_status": "married", "status": "inactive",
	}

	// A different leader does not own the record.
	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodPut, "/api/members/"+memberID, otherToken, update).status)

	// The owner and any admin may update.
	assert.Equal(t, http.StatusOK,
		do(t, server, http.MethodPut, "/api/members/"+memberID, ownerToken, update).status)
	assert.Equal(t, http.StatusOK,
		do(t, server, http.MethodPut, "/api/members/"+memberID, adminToken, update).status)

	// Missing record surfaces as 404 through the gate.
	assert.Equal(t, http.StatusNotFound,
		do(t, server, http.MethodPut, "/api/members/ghost", ownerToken, update).status)

	// Plain members cannot create registry records.
	_, memberToken := register(t, server, "Plain", "plain@church.org", "secret1", "")
	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodPost, "/api/members/", memberToken, update).status)
}

func TestAuditTrailAdminOnly(t *testing.T) {
	server := newTestServer(t)
	_, adminToken := register(t, server, "Admin", "admin@church.org", "secret1", "admin")
	_, memberToken := register(t, server, "Member", "member@church.org", "secret1", "")

	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodGet, "/api/audit/", memberToken, nil).status)

	resp := do(t, server, http.MethodGet, "/api/audit/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.GreaterOrEqual(t, resp.body["total"].(float64), float64(2),
		"both registrations should have audit entries")
}

func TestSettingsRoundTrip(t *testing.T) {
	server := newTestServer(t)
	_, adminToken := register(t, server, "Admin", "admin@church.org", "secret1", "admin")
	_, memberToken := register(t, server, "Member", "member@church.org", "secret1", "")

	// Members may read but not write.
	assert.Equal(t, http.StatusOK,
		do(t, server, http.MethodGet, "/api/settings/church.name", memberToken, nil).status)
	assert.Equal(t, http.StatusForbidden,
		do(t, server, http.MethodPut, "/api/settings/church.name", memberToken,
			map[string]string{"value": "x"}).status)

	resp := do(t, server, http.MethodPut, "/api/settings/church.name", adminToken,
		map[string]string{"value": "First Church"})
	require.Equal(t, http.StatusOK, resp.status)

	resp = do(t, server, http.MethodGet, "/api/settings/church.name", memberToken, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "First Church", resp.body["value"])
}

func TestEventCRUDFlow(t *testing.T) {
	server := newTestServer(t)
	_, leaderToken := register(t, server, "Leader", "leader@church.org", "secret1", "leader")

	created := do(t, server, http.MethodPost, "/api/events/", leaderToken, map[string]any{
		"title": "Sunday Service", "type": "service", "category": "spiritual",
		"starts_at": "2026-09-06T10:00:00Z", "ends_at": "2026-09-06T12:00:00Z",
		"location": "Main Hall", "capacity": 200,
	})
	require.Equal(t, http.StatusCreated, created.status, "%v", created.body)
	eventID := created.body["id"].(string)

	resp := do(t, server, http.MethodGet, "/api/events/"+eventID, leaderToken, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Sunday Service", resp.body["title"])

	// Validation errors come back as 400.
	bad := do(t, server, http.MethodPost, "/api/events/", leaderToken, map[string]any{
		"title": "Broken", "type": "service", "category": "spiritual",
		"starts_at": "2026-09-06T12:00:00Z", "ends_at": "2026-09-06T10:00:00Z",
		"location": "Main Hall",
	})
	assert.Equal(t, http.StatusBadRequest, bad.status)
}
