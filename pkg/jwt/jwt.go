package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TypeSession = "session"

var ErrTokenType = errors.New("invalid token type")

type Claims struct {
	SessionID string `json:"sid"`
	UserID    uint64 `json:"user_id"`
	IsAdmin   bool   `json:"is_admin"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateToken(secret []byte, sid string, userID uint64, isAdmin bool, tokenType string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sid,
		UserID:    userID,
		IsAdmin:   isAdmin,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, expectedType string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != expectedType {
		return nil, ErrTokenType
	}

	return claims, nil
}
