package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("super-secret"), 0)
	tok, issued, err := s.Issue("user-123")
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, DefaultTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_DistinctIDs(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), time.Hour)
	_, a, err := s.Issue("u1")
	require.NoError(t, err)
	_, b, err := s.Issue("u1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("secret"), time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := issuer.Issue("u1")
	require.NoError(t, err)

	// Same secret, so the signature is valid; only the expiry fails.
	_, err = NewTokenService([]byte("secret"), time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := s.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenService([]byte("k"), time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenService([]byte("k"), time.Hour).Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = NewTokenService([]byte("k"), time.Hour).Parse(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = NewTokenService([]byte("k"), time.Hour).Parse(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
