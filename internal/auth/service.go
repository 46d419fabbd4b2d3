// Package auth issues and verifies the HS256 session tokens that carry the
// acting user id. Sign-up and password flows live with the identity
// provider; this service only trusts tokens signed with the shared secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("token has no user id")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Claims are the session claims. The user id is carried in both `sub` and
// `user_id`; older tokens only set `user_id`.
type Claims struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ActorID returns the acting user id, preferring `sub`
func (c *Claims) ActorID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}

// Service handles session tokens
type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates a new authentication service
func NewService(jwtSecret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		jwtSecret: jwtSecret,
		ttl:       ttl,
		now:       time.Now,
	}
}

// TokenResponse is returned to clients that exchange credentials for a session
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken signs a session token for the given user
func (s *Service) IssueToken(userID, username string) (*TokenResponse, error) {
	if len(s.jwtSecret) == 0 {
		return nil, ErrEmptySecret
	}
	if userID == "" {
		return nil, ErrMissingUser
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// VerifyToken validates a session token and returns its claims
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if len(s.jwtSecret) == 0 {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ActorID() == "" {
		return nil, ErrMissingUser
	}
	return claims, nil
}
