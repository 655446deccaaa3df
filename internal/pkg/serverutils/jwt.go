// FILE: internal/pkg/serverutils/jwt.go
package serverutils

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// JwtSecret is the single source for the token signing key. The fallback
// keeps local development working without an env file; production sets
// JWT_SECRET.
func JwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// ParseToken verifies a signed access token. Only HS256 is accepted; tokens
// carrying any other alg header are rejected before signature verification.
func ParseToken(tokenStr string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return JwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
