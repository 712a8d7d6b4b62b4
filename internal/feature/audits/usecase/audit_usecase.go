// Package usecase implements the business logic for the audits feature.
package usecase

import (
	"context"

	"template_backend/internal/feature/audits/domain/entity"
	"template_backend/internal/shared/apperr"
	"template_backend/internal/shared/pagination"
)

// AuditRepository abstracts the persistence layer for audit records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AuditRepository interface {
	// Create persists one audit record.
	Create(ctx context.Context, audit *entity.Audit) error

	// List returns one page of audit records ordered newest first,
	// optionally filtered by a case-insensitive search over the
	// entity and method columns, together with the filtered total.
	List(ctx context.Context, offset, limit int, search string) ([]entity.Audit, int64, error)
}

// ListResult is one page of audit records plus paging metadata.
type ListResult struct {
	Audits     []entity.Audit
	ActualPage int
	TotalPages int
	Total      int64
}

// AuditUsecase records and lists audit trail entries.
type AuditUsecase struct {
	audits AuditRepository
}

// NewAuditUsecase はAuditUsecaseの新しいインスタンスを生成します。
func NewAuditUsecase(audits AuditRepository) *AuditUsecase {
	return &AuditUsecase{audits: audits}
}

// Record persists one audit record.
func (u *AuditUsecase) Record(ctx context.Context, audit *entity.Audit) error {
	return u.audits.Create(ctx, audit)
}

// List returns one page of audit records. Page and perPage arrive as
// raw query strings and are coerced to sane defaults.
func (u *AuditUsecase) List(ctx context.Context, page, perPage, search string) (*ListResult, error) {
	p, pp := pagination.Normalize(page, perPage)

	audits, total, err := u.audits.List(ctx, pagination.Offset(p, pp), pp, search)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &ListResult{
		Audits:     audits,
		ActualPage: p,
		TotalPages: pagination.TotalPages(total, pp),
		Total:      total,
	}, nil
}
