package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller extracted from a JWT.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// ExtractIdentityFromHeader parses the Authorization header (Bearer <token>)
// and returns the caller's identity from the JWT claims.
func ExtractIdentityFromHeader(authHeader string) (Identity, error) {
	var id Identity

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return id, errors.New("missing or invalid Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return id, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err != nil || !token.Valid {
		return id, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return id, errors.New("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return id, errors.New("invalid token payload")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return id, errors.New("invalid user id in token")
	}

	id.UserID = userID
	id.Email, _ = claims["email"].(string)
	id.Role, _ = claims["user_role"].(string)
	return id, nil
}

// ExtractUserIDFromHeader returns only the user_id UUID from the JWT claims.
func ExtractUserIDFromHeader(authHeader string) (uuid.UUID, error) {
	id, err := ExtractIdentityFromHeader(authHeader)
	if err != nil {
		return uuid.Nil, err
	}
	return id.UserID, nil
}
