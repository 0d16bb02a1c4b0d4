package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", "gdvg", time.Hour)

	token, expires, err := m.GenerateAdminToken("curator")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "curator", claims.Subject)
	assert.Equal(t, "gdvg", claims.Issuer)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("secret", "gdvg", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.GenerateAdminToken("curator")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAdminToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	token, _, err := NewManager("one", "gdvg", time.Hour).GenerateAdminToken("curator")
	require.NoError(t, err)

	_, err = NewManager("two", "gdvg", time.Hour).ValidateAdminToken(token)
	assert.ErrorIs(t, err, gojwt.ErrSignatureInvalid)
}

func TestWrongTokenTypeRejected(t *testing.T) {
	m := NewManager("secret", "gdvg", time.Hour)
	claims := Claims{
		Type: "refresh",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "curator",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
