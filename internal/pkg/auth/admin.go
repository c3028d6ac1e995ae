package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminRole is the role claim carried by admin tokens.
const AdminRole = "admin"

// ErrNotAdmin is returned when a token validates but does not carry the
// admin role claim.
var ErrNotAdmin = errors.New("token does not carry admin role")

// AdminTokenConfig defines admin token settings. The signing secret is
// separate from the user session secret: admin tokens and session tokens
// must not be interchangeable.
type AdminTokenConfig struct {
	Username  string
	Password  string
	SecretKey string
	TokenExp  time.Duration
	Issuer    string
}

// AdminTokenService is the single verify-and-extract-claims authority for
// the admin route family.
type AdminTokenService struct {
	config AdminTokenConfig
}

// NewAdminTokenService creates a new AdminTokenService
func NewAdminTokenService(config AdminTokenConfig) *AdminTokenService {
	return &AdminTokenService{config: config}
}

// AdminClaims defines admin token content
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CheckCredentials verifies the supplied admin credentials in constant time.
func (s *AdminTokenService) CheckCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.Password)) == 1
	return userOK && passOK
}

// GenerateToken issues a signed admin token.
func (s *AdminTokenService) GenerateToken() (string, error) {
	claims := &AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.Issuer,
			Subject:   s.config.Username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates an admin token and checks the role claim.
func (s *AdminTokenService) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse admin token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != AdminRole {
		return nil, ErrNotAdmin
	}

	return claims, nil
}
