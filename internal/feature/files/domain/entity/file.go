// Package entity defines the domain entities for the files feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File records the metadata of an uploaded file stored on local disk.
// The stored path is keyed by the original filename, so a later upload
// with the same name overwrites the previous bytes.
type File struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;size:36;not null"`

	Filename string `gorm:"size:255;not null"`
	Mimetype string `gorm:"size:255;not null"`
	Path     string `gorm:"size:512;not null"`
	Size     int64  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// BeforeCreate assigns a UUID when none was provided.
func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.UUID == "" {
		f.UUID = uuid.NewString()
	}
	return nil
}
