// Package adapters はauditsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"template_backend/internal/feature/audits/domain/entity"
	"template_backend/internal/feature/audits/usecase"
)

// auditPostgres はAuditRepositoryインターフェースのPostgres実装です。
type auditPostgres struct {
	db *gorm.DB
}

var _ usecase.AuditRepository = (*auditPostgres)(nil)

// NewAuditPostgres creates an auditPostgres with the given gorm.DB connection.
func NewAuditPostgres(db *gorm.DB) *auditPostgres {
	return &auditPostgres{db: db}
}

// Create は監査レコードをデータベースに追加します。
func (r *auditPostgres) Create(ctx context.Context, a *entity.Audit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// List は監査レコードを新しい順に1ページ分取得します。
// searchが空でない場合、entityとmethodカラムを部分一致で絞り込みます。
func (r *auditPostgres) List(ctx context.Context, offset, limit int, search string) ([]entity.Audit, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Audit{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(entity) LIKE LOWER(?) OR LOWER(method) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var audits []entity.Audit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&audits).Error; err != nil {
		return nil, 0, err
	}
	return audits, total, nil
}
