package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey signs reviewer tokens.
// TODO(config): load from PROCDESK_JWT_SECRET instead of a constant.
var jwtKey = []byte("procdesk_local_signing_key_2026")

// CustomClaims is the payload carried inside a reviewer token. UserID is
// what the audit log records as the acting user.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 JWT for a reviewer.
func GenerateToken(userID string, roles []string, tokenDuration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "procdesk",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken checks signature and expiry and returns the claims.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
