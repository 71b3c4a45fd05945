package jwtmw

import "errors"

var (
	// ErrInvalidToken is returned for malformed tokens, bad signatures, unexpected
	// signing algorithms and missing required claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a correctly signed token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")

	// ErrEmptySecret is returned when an Issuer is constructed without a signing secret.
	ErrEmptySecret = errors.New("signing secret must not be empty")
)
