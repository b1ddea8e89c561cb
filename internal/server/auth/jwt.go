// Package auth issues and validates the HS256 access tokens used by the
// JSON API layer.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thaliumbank/thalium/internal/common"
)

// Claims carries the standard registered claims plus the authenticated
// client id.
type Claims struct {
	jwt.RegisteredClaims
	ClientID int64
}

// GenerateToken signs a token identifying clientID, valid for validityDuration.
func GenerateToken(clientID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		ClientID: clientID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClientIDFromToken parses and validates tokenString and returns the
// client id it identifies.
func GetClientIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.ClientID, nil
}
