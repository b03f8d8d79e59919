package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RememberClaims is the payload of the long-lived "remember me" cookie.
type RememberClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueRememberToken signs a token for userID that expires after ttl.
func IssueRememberToken(key []byte, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RememberClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "remember",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseRememberToken validates t and returns its claims.
func ParseRememberToken(key []byte, t string) (*RememberClaims, error) {
	token, err := jwt.ParseWithClaims(t, &RememberClaims{}, func(tok *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*RememberClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject != "remember" {
		return nil, errors.New("auth: not a remember token")
	}
	return claims, nil
}
