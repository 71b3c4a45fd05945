// Package jwtmw issues and validates HS256 bearer tokens and provides the
// Gin middleware that protects authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auth_backend/internal/feature/auth/domain/entity"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = time.Hour

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for iat/exp and for validation.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// Issuer signs identities into tokens and validates tokens back into identities.
// It is safe for concurrent use; its state is fixed at construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer with the process-wide secret and token lifetime.
// A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	i := &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed token whose subject is the identity's username.
func (i *Issuer) Issue(identity entity.Identity) (string, error) {
	if identity.Username == "" {
		return "", errors.New("identity has no username")
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   identity.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate checks the signature and expiry of tokenStr and returns the embedded identity.
// The signature is verified before any claim, so ErrExpiredToken is only
// reported for tokens this Issuer actually signed.
func (i *Issuer) Validate(tokenStr string) (entity.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entity.Identity{}, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return entity.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return entity.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return entity.Identity{Username: claims.Subject}, nil
}
