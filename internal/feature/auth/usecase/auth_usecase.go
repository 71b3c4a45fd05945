package usecase

import (
	"context"
	"errors"
	"fmt"

	"auth_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// fallbackDummyHash is a well-formed bcrypt hash (cost 10) compared against when
// the username is unknown and the per-cost dummy could not be generated.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and returns its ID.
	// It returns ErrInvalidInput for an empty username or hash and
	// ErrDuplicateUsername when the username is already taken.
	Create(ctx context.Context, username, passwordHash string) (uint, error)

	// FindByUsername retrieves the user with exactly this username.
	// A missing user is reported as ok == false with a nil error.
	FindByUsername(ctx context.Context, username string) (user entity.User, ok bool, err error)
}

// TokenIssuer mints bearer tokens for verified identities.
type TokenIssuer interface {
	// Issue returns a signed, time-bounded token asserting the identity.
	Issue(identity entity.Identity) (string, error)
}

// authUsecase implements registration, authentication and login.
type authUsecase struct {
	users      UserRepository
	tokens     TokenIssuer
	bcryptCost int
	dummyHash  []byte
}

// NewAuthUsecase creates an authUsecase. A bcryptCost outside
// [bcrypt.MinCost, bcrypt.MaxCost] falls back to bcrypt.DefaultCost.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, bcryptCost int) *authUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// The dummy hash uses the same cost as real hashes so that an unknown
	// username takes as long to reject as a wrong password.
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcryptCost)
	if err != nil {
		dummy = []byte(fallbackDummyHash)
	}

	return &authUsecase{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register hashes the password with a fresh salt and stores the new user.
func (u *authUsecase) Register(ctx context.Context, username, password string) (uint, error) {
	if username == "" || password == "" {
		return 0, ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, ErrPasswordTooLong
		}
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := u.users.Create(ctx, username, string(hashed))
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// Authenticate verifies a username/password pair against the credential store.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (entity.Identity, error) {
	user, ok, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("failed to find user: %w", err)
	}

	// Always run a bcrypt comparison so the missing-user path is not measurably faster.
	hash := u.dummyHash
	if ok {
		hash = []byte(user.PasswordHash)
	}

	// Any comparison error counts as a mismatch, including a stored value
	// that is not a bcrypt hash at all.
	compareErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if !ok || compareErr != nil {
		return entity.Identity{}, ErrInvalidCredentials
	}

	return entity.Identity{Username: user.Username}, nil
}

// Login authenticates the user and, on success, returns a signed bearer token.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	identity, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := u.tokens.Issue(identity)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
