// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

const (
	// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
	pgUniqueViolation = "23505"
	// mysqlDuplicateEntry is MySQL error 1062 (ER_DUP_ENTRY).
	mysqlDuplicateEntry = 1062
)

// userGorm is the GORM implementation of the UserRepository interface.
// It works with any dialect opened by platform/db (sqlite, postgres, mysql).
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new userGorm backed by the given connection.
// The connection should be opened with gorm.Config{TranslateError: true}.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts a user and returns the assigned ID.
// Uniqueness is enforced by the unique index on username; a conflicting
// insert is reported as usecase.ErrDuplicateUsername.
func (r *userGorm) Create(ctx context.Context, username, passwordHash string) (uint, error) {
	if username == "" || passwordHash == "" {
		return 0, usecase.ErrInvalidInput
	}

	u := &entity.User{Username: username, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, usecase.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return u.ID, nil
}

// FindByUsername looks up a user by exact username.
// The username is always bound as a single placeholder argument.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (entity.User, bool, error) {
	var u entity.User
	res := r.db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&u)
	if res.Error != nil {
		return entity.User{}, false, fmt.Errorf("select user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.User{}, false, nil
	}
	return u, true, nil
}

// isDuplicateKey reports whether err is a unique-constraint violation from any supported driver.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}

	return false
}
