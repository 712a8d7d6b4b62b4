// Package usecase implements the business logic for the files feature.
package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"template_backend/internal/feature/files/domain/entity"
	"template_backend/internal/shared/apperr"
)

// ErrFileNotFound is returned when a file cannot be found by UUID.
var ErrFileNotFound = errors.New("file not found")

// FileRepository abstracts the persistence layer for file metadata.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FileRepository interface {
	// Create persists a new file metadata row.
	Create(ctx context.Context, file *entity.File) error

	// FindByUUID retrieves a file by UUID.
	// It returns ErrFileNotFound if the file does not exist.
	FindByUUID(ctx context.Context, uuid string) (*entity.File, error)

	// SoftDelete marks the file as logically deleted.
	SoftDelete(ctx context.Context, uuid string) error

	// Delete removes the metadata row physically.
	Delete(ctx context.Context, uuid string) error
}

// Upload carries one uploaded file's metadata and content.
type Upload struct {
	Filename string
	Mimetype string
	Size     int64
	Content  io.Reader
}

// DeleteResult is the response shape of the delete operation.
type DeleteResult struct {
	Success    bool
	StatusCode int
	Message    string
}

// FileUsecase stores uploaded bytes on local disk and records metadata.
type FileUsecase struct {
	files FileRepository
	dir   string
}

// NewFileUsecase creates a FileUsecase writing into dir.
func NewFileUsecase(files FileRepository, dir string) *FileUsecase {
	return &FileUsecase{files: files, dir: dir}
}

// Create writes the uploaded bytes under the upload directory keyed by
// the original filename and persists a metadata row. A later upload with
// the same name overwrites the earlier one. Every failure is reported as
// Bad Request.
func (u *FileUsecase) Create(ctx context.Context, up Upload) (*entity.File, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	path := filepath.Join(u.dir, filepath.Base(up.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if _, err := io.Copy(dst, up.Content); err != nil {
		dst.Close()
		return nil, apperr.BadRequest(err.Error())
	}
	if err := dst.Close(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	file := &entity.File{
		Filename: filepath.Base(up.Filename),
		Mimetype: up.Mimetype,
		Path:     path,
		Size:     up.Size,
	}
	if err := u.files.Create(ctx, file); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return file, nil
}

// GetByUUID returns the file metadata with the given UUID.
func (u *FileUsecase) GetByUUID(ctx context.Context, uuid string) (*entity.File, error) {
	file, err := u.files.FindByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, apperr.NotFound("File not found.")
		}
		return nil, apperr.BadRequest(err.Error())
	}
	return file, nil
}

// SoftDelete marks the file as logically deleted; the stored bytes stay
// on disk.
func (u *FileUsecase) SoftDelete(ctx context.Context, uuid string) error {
	if err := u.files.SoftDelete(ctx, uuid); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}

// Delete removes the metadata row physically.
func (u *FileUsecase) Delete(ctx context.Context, uuid string) (*DeleteResult, error) {
	if err := u.files.Delete(ctx, uuid); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &DeleteResult{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    "File deleted successfully",
	}, nil
}
