package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	for _, id := range []string{"u1", "6e1c0f2a-0000-0000-0000-000000000001", "another-id"} {
		token, err := issuer.Issue(id)
		require.NoError(t, err)

		got, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Second)
	require.NoError(t, err)

	// Issue in the past so the token is expired by one second at verify time.
	past := time.Now().Add(-2 * time.Second)
	issuer.now = func() time.Time { return past }
	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired, "valid signature past expiry must be Expired, never Malformed")
}

func TestTokenIssuer_WrongKeyIsMalformedNotExpired(t *testing.T) {
	signer, err := NewTokenIssuer("key-one", time.Second)
	require.NoError(t, err)
	verifier, err := NewTokenIssuer("key-two", time.Second)
	require.NoError(t, err)

	// Expired under the wrong key: signature failure must win over expiry.
	past := time.Now().Add(-time.Hour)
	signer.now = func() time.Time { return past }
	token, err := signer.Issue("u1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "not.a.jwt", "a.b", "!!!"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	issuer, err := NewTokenIssuer("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, issuer.ttl)
}
