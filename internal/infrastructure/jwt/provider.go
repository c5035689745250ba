package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lamiarosa/store-api/internal/config"
)

// Claims holds the session-token payload. UserID and Email carry the same
// value: the verified email address is the identity.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. The secret is supplied
// at process start; there is no server-side session table. A token is valid
// iff its signature verifies and its embedded expiry has not passed.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is not set")
	}
	return &Provider{
		secret: []byte(cfg.AuthSecret),
		expiry: time.Duration(cfg.SessionExpiryDays) * 24 * time.Hour,
	}, nil
}

func (p *Provider) Sign(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: email,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Expiry returns the configured session-token lifetime.
func (p *Provider) Expiry() time.Duration { return p.expiry }
