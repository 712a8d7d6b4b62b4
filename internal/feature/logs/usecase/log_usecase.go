// Package usecase implements the business logic for the logs feature.
package usecase

import (
	"context"

	"template_backend/internal/feature/logs/domain/entity"
	"template_backend/internal/shared/apperr"
	"template_backend/internal/shared/pagination"
)

// LogRepository abstracts the persistence layer for error-log records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LogRepository interface {
	// Create persists one error-log record.
	Create(ctx context.Context, log *entity.Log) error

	// List returns one page of error-log records ordered newest
	// first, optionally filtered by a case-insensitive search over
	// the error text, together with the filtered total.
	List(ctx context.Context, offset, limit int, search string) ([]entity.Log, int64, error)
}

// ListResult is one page of error-log records plus paging metadata.
type ListResult struct {
	Logs       []entity.Log
	ActualPage int
	TotalPages int
	Total      int64
}

// LogUsecase records and lists error-log entries.
type LogUsecase struct {
	logs LogRepository
}

// NewLogUsecase はLogUsecaseの新しいインスタンスを生成します。
func NewLogUsecase(logs LogRepository) *LogUsecase {
	return &LogUsecase{logs: logs}
}

// Record persists one error-log record.
func (u *LogUsecase) Record(ctx context.Context, log *entity.Log) error {
	return u.logs.Create(ctx, log)
}

// List returns one page of error-log records. Page and perPage arrive
// as raw query strings and are coerced to sane defaults.
func (u *LogUsecase) List(ctx context.Context, page, perPage, search string) (*ListResult, error) {
	p, pp := pagination.Normalize(page, perPage)

	logs, total, err := u.logs.List(ctx, pagination.Offset(p, pp), pp, search)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &ListResult{
		Logs:       logs,
		ActualPage: p,
		TotalPages: pagination.TotalPages(total, pp),
		Total:      total,
	}, nil
}
