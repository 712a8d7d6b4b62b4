// Package adapters はlogsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"template_backend/internal/feature/logs/domain/entity"
	"template_backend/internal/feature/logs/usecase"
)

// logPostgres はLogRepositoryインターフェースのPostgres実装です。
type logPostgres struct {
	db *gorm.DB
}

var _ usecase.LogRepository = (*logPostgres)(nil)

// NewLogPostgres creates a logPostgres with the given gorm.DB connection.
func NewLogPostgres(db *gorm.DB) *logPostgres {
	return &logPostgres{db: db}
}

// Create はエラーログレコードをデータベースに追加します。
func (r *logPostgres) Create(ctx context.Context, l *entity.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// List はエラーログレコードを新しい順に1ページ分取得します。
// searchが空でない場合、errorカラムを部分一致で絞り込みます。
func (r *logPostgres) List(ctx context.Context, offset, limit int, search string) ([]entity.Log, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Log{})
	if search != "" {
		query = query.Where("LOWER(error) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.Log
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
