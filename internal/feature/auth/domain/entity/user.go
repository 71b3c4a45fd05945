// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the credential store.
type User struct {
	// ID is assigned by the store on creation and never changes.
	ID uint `gorm:"primaryKey"`

	// Username is unique across all users and compared byte-for-byte (case-sensitive).
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt encoding of the password, salt included.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
