// Package entity defines the domain entities for the audits feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit is an immutable log entry capturing who changed what for a
// request that passed the authorization guard. Old/new state snapshots
// are stored as JSON text and are nil for non-mutating requests.
// Records are created once and never updated or deleted by the pipeline.
type Audit struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;size:36;not null"`

	// Entity is the audited collection name derived from the URL path
	// segment, e.g. "users". Positional, not a foreign key.
	Entity string `gorm:"size:255"`

	Method    string  `gorm:"size:16;not null"`
	URL       string  `gorm:"size:512;not null"`
	UserUUID  *string `gorm:"size:36;index"`
	IP        string  `gorm:"size:64"`
	UserAgent string  `gorm:"size:512"`

	OldData *string `gorm:"type:text"`
	NewData *string `gorm:"type:text"`

	CreatedAt time.Time
}

// BeforeCreate assigns a UUID when none was provided.
func (a *Audit) BeforeCreate(_ *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}
