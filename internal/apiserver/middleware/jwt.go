// Package middleware holds the gin middleware of the API server.
package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/common/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller's identity inside the token.
type Claims struct {
	UserID   string        `json:"uid"`
	TenantID string        `json:"tid"`
	Role     cnst.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates API tokens.
type JWTService struct {
	secret   []byte
	duration time.Duration
}

// NewJWTService creates a new JWT service from configuration
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:   []byte(cfg.SecretKey),
		duration: cfg.Duration,
	}
}

// GenerateToken issues a signed token for the given identity.
func (s *JWTService) GenerateToken(userID, tenantID string, role cnst.UserRole) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
