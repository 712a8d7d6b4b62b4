package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleType is the machine-readable role discriminator.
type RoleType string

// Seeded role types. The list is fixed; roles are created once at
// startup when absent.
const (
	RoleAdmin    RoleType = "ADMIN"
	RoleManager  RoleType = "MANAGER"
	RoleEmployee RoleType = "EMPLOYEE"
)

// ParseRoleType maps a request-supplied role string to a known RoleType.
// It accepts the lowercase aliases used by the HTTP surface.
func ParseRoleType(s string) (RoleType, bool) {
	switch s {
	case "admin", string(RoleAdmin):
		return RoleAdmin, true
	case "manager", string(RoleManager):
		return RoleManager, true
	case "employee", string(RoleEmployee):
		return RoleEmployee, true
	}
	return "", false
}

// Role represents a user role referenced by User via foreign key.
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;size:36;not null"`

	// Name is the human-readable display name, e.g. "admin".
	Name string `gorm:"size:255;not null"`

	// Type is the machine-readable discriminator, unique per role.
	Type RoleType `gorm:"uniqueIndex;size:32;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID when none was provided.
func (r *Role) BeforeCreate(_ *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}
