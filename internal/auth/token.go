package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Token verification failures. Each kind maps to a distinct, stable
// user-facing message at the API boundary.
var (
	// ErrTokenExpired means the signature was valid but the expiry passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed means the token was structurally wrong or the
	// signature did not verify.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenUnknown covers any other decode failure.
	ErrTokenUnknown = errors.New("token invalid")
)

// TokenIssuer mints and verifies HS256 bearer tokens bound to a user id.
// Tokens are not persisted server-side: validity is determined purely by
// signature and expiry. There is no revocation list; a compromised token
// stays valid until natural expiry. Accepted limitation of this design.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer for the given secret. ttl <= 0 uses
// DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token whose subject is userID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject user id.
// Failures are one of ErrTokenExpired, ErrTokenMalformed, ErrTokenUnknown.
// Expiry is only reported when the signature itself verified, so a token
// signed with the wrong key never comes back as "expired".
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", ErrTokenMalformed
		default:
			return "", ErrTokenUnknown
		}
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenUnknown
	}
	return claims.Subject, nil
}
