package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var secretKey = []byte(os.Getenv("JWT_SECRET"))

// SetJWTSecret overrides the signing secret. Called once at startup with
// the configured value; the env fallback covers tests and tools.
func SetJWTSecret(secret string) {
	secretKey = []byte(secret)
}

// TokenClaims is the decoded identity embedded in a bearer token.
type TokenClaims struct {
	UserID   uint64
	Email    string
	UserType string
}

// GenerateToken creates a signed HS256 bearer token embedding the user's
// id, email, and type, expiring after the given duration.
func GenerateToken(userID uint64, email, userType string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId":   userID,
		"email":    email,
		"userType": userType,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, errors.New("token does not contain a valid 'userId' claim")
	}

	email, _ := claims["email"].(string)
	userType, _ := claims["userType"].(string)
	if email == "" || userType == "" {
		return nil, fmt.Errorf("token missing identity claims")
	}

	return &TokenClaims{
		UserID:   uint64(userID),
		Email:    email,
		UserType: userType,
	}, nil
}
