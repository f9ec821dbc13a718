package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// RoleAdmin is the role claim required on admin API tokens.
const RoleAdmin = "admin"

var (
	ErrMissingSecret = errors.New("admin jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotAdmin      = errors.New("token does not carry the admin role")
)

// GenerateAdminToken creates a signed HS256 token for a staff member.
// The token expires after the specified duration.
func GenerateAdminToken(secret, subject string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret, tokenString string) (*jwt.Token, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
}

// ExtractAdminSubject validates an admin token and returns its subject.
func ExtractAdminSubject(secret, tokenString string) (string, error) {
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return "", ErrNotAdmin
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
