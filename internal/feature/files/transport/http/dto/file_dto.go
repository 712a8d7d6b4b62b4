// Package dto defines data transfer objects for the files feature's HTTP transport layer.
package dto

import (
	"time"

	"template_backend/internal/feature/files/domain/entity"
)

// ReadFile is the file metadata payload returned by file endpoints.
type ReadFile struct {
	UUID      string     `json:"uuid"`
	Filename  string     `json:"filename"`
	Mimetype  string     `json:"mimetype"`
	Path      string     `json:"path"`
	Size      int64      `json:"size"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// NewReadFile maps a file entity to its response shape.
func NewReadFile(f *entity.File) ReadFile {
	return ReadFile{
		UUID:      f.UUID,
		Filename:  f.Filename,
		Mimetype:  f.Mimetype,
		Path:      f.Path,
		Size:      f.Size,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		DeletedAt: f.DeletedAt,
	}
}
