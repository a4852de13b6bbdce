package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lyricverse-api/internal/models"
)

const (
	sessionIssuer = "lyricverse-api"

	// SessionCookie is the cookie holding the signed session token
	SessionCookie = "lv_session"
)

// Sessions issues and verifies signed session tokens carried in the
// admin session cookie
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

type sessionClaims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// NewSessions creates a session manager with the given signing secret
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the identity
func (s *Sessions) Issue(identity models.Identity) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:    identity.Name,
		Picture: identity.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the identity it carries
func (s *Sessions) Verify(tokenString string) (models.Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return models.Identity{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return models.Identity{}, errors.New("invalid session token")
	}

	return models.Identity{
		Email:    claims.Subject,
		Name:     claims.Name,
		ImageURL: claims.Picture,
	}, nil
}

// TTL returns the session lifetime, for cookie max-age
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
