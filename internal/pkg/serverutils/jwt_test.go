// FILE: internal/pkg/serverutils/jwt_test.go
package serverutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWith(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"user_id": "9f7a1f6e-0000-4000-8000-000000000001",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	signed := signWith(t, jwt.SigningMethodHS256, JwtSecret())

	claims, ok := ParseToken(signed)
	require.True(t, ok)
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "9f7a1f6e-0000-4000-8000-000000000001", claims["user_id"])
}

func TestParseTokenDefaultSecretFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	// Signing and parsing must agree on the fallback secret when the env
	// var is missing.
	signed := signWith(t, jwt.SigningMethodHS256, []byte("default_secret"))

	_, ok := ParseToken(signed)
	assert.True(t, ok)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	signed := signWith(t, jwt.SigningMethodHS256, []byte("some_other_secret"))

	_, ok := ParseToken(signed)
	assert.False(t, ok)
}

func TestParseTokenRejectsForeignAlg(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	// Same secret, different HMAC alg. Only HS256 is on the allowlist.
	signed := signWith(t, jwt.SigningMethodHS512, JwtSecret())

	_, ok := ParseToken(signed)
	assert.False(t, ok)
}

func TestParseTokenRejectsUnsignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "9f7a1f6e-0000-4000-8000-000000000001",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := ParseToken(signed)
	assert.False(t, ok)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "9f7a1f6e-0000-4000-8000-000000000001",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString(JwtSecret())
	require.NoError(t, err)

	_, ok := ParseToken(signed)
	assert.False(t, ok)
}
