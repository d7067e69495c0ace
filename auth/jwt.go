package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid session token")

func signToken(secret []byte, userID, role string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID": userID,
		"role":   role,
		"exp":    expiresAt.Unix(),
	})
	return token.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errInvalidToken
	}
	userID, _ = claims["userID"].(string)
	role, _ = claims["role"].(string)
	if userID == "" || role == "" {
		return "", "", errInvalidToken
	}
	return userID, role, nil
}
