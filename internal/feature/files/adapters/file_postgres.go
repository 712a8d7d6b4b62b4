// Package adapters はfilesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"template_backend/internal/feature/files/domain/entity"
	"template_backend/internal/feature/files/usecase"
)

// filePostgres はFileRepositoryインターフェースのPostgres実装です。
type filePostgres struct {
	db *gorm.DB
}

var _ usecase.FileRepository = (*filePostgres)(nil)

// NewFilePostgres creates a filePostgres with the given gorm.DB connection.
func NewFilePostgres(db *gorm.DB) *filePostgres {
	return &filePostgres{db: db}
}

// Create はファイルメタデータをデータベースに追加します。
func (r *filePostgres) Create(ctx context.Context, f *entity.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// FindByUUID はUUIDでファイルメタデータを取得します。
// 存在しない場合、usecase.ErrFileNotFoundを返します。
func (r *filePostgres) FindByUUID(ctx context.Context, uuid string) (*entity.File, error) {
	var f entity.File
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFileNotFound
		}
		return nil, err
	}
	return &f, nil
}

// SoftDelete はDeletedAtを現在時刻に設定します。
func (r *filePostgres) SoftDelete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Model(&entity.File{}).
		Where("uuid = ?", uuid).
		Update("deleted_at", time.Now()).Error
}

// Delete はファイルメタデータを物理削除します。
func (r *filePostgres) Delete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&entity.File{}).Error
}
