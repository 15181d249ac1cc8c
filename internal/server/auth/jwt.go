// Package auth implements the token issuer and credential hashing.
// Tokens are stateless HS256 JWTs carrying the subject user id, issued-at and
// expiry; the signing secret is injected from configuration and held only here
// and by the HTTP middleware.
package auth

import (
	"errors"
	"time"

	"github.com/dkoloskov/wellspring/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the owning user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature and expiry of tokenString and
// returns the embedded user id. Expired tokens yield shared.ErrorTokenExpired,
// everything else malformed yields shared.ErrorInvalidToken; callers surface
// both identically.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", shared.ErrorTokenExpired
		}
		return "", shared.ErrorInvalidToken
	}

	if !token.Valid {
		return "", shared.ErrorInvalidToken
	}

	if claims.UserID == "" {
		return "", shared.ErrorNoUserID
	}

	return claims.UserID, nil
}
