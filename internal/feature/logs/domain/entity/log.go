// Package entity defines the domain entities for the error-log feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Log is an append-only record of one classified exception, persisted by
// the global error middleware.
type Log struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;size:36;not null"`

	Error      string `gorm:"type:text;not null"`
	StatusCode int    `gorm:"not null"`
	StatusText string `gorm:"size:64;not null"`
	Method     string `gorm:"size:16;not null"`
	Path       string `gorm:"size:512;not null"`
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:512"`

	CreatedAt time.Time
}

// BeforeCreate assigns a UUID when none was provided.
func (l *Log) BeforeCreate(_ *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.NewString()
	}
	return nil
}
