package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserName string `json:"userName"`
	Role     string `json:"role"`
	Session  string `json:"session"`
	jwt.RegisteredClaims
}

func GenerateToken(userName, role, session, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserName: userName,
		Role:     role,
		Session:  session,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
