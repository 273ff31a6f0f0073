package repository

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v4"
)

// VerifyAndGetUserID checks a Supabase access token and returns the user id
// from its sub claim.
func VerifyAndGetUserID(tokenString string) (string, error) {
	jwtSecret := os.Getenv("FITLOG_SUPABASE_JWT_SECRET")
	if jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub, nil
		}
		return "", fmt.Errorf("sub claim not found or not a string")
	}
	return "", fmt.Errorf("invalid token claims")
}
