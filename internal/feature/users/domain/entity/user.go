// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user. The password column holds the
// reversible ciphertext produced by the password cipher, never plaintext.
type User struct {
	// ID is the internal primary key.
	ID uint `gorm:"primaryKey"`

	// UUID is the public identifier used by the HTTP surface and token
	// subject claim.
	UUID string `gorm:"uniqueIndex;size:36;not null"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// Email is unique across all users and used for authentication.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the encrypted password ciphertext.
	Password string `gorm:"size:512;not null"`

	// RoleID references the user's role. Every user has exactly one role.
	RoleID uint  `gorm:"not null"`
	Role   *Role `gorm:"foreignKey:RoleID"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt marks logical deletion. The explicit delete operation
	// removes the row physically instead of setting it.
	DeletedAt *time.Time `gorm:"index"`
}

// BeforeCreate assigns a UUID when none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// RoleName returns the display name of the user's role, or "" when the
// role association was not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// RoleType returns the machine-readable role type, or "" when the role
// association was not loaded.
func (u *User) RoleType() string {
	if u.Role == nil {
		return ""
	}
	return string(u.Role.Type)
}
