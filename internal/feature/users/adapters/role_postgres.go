package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/feature/users/usecase"
)

// rolePostgres はRoleRepositoryインターフェースのPostgres実装です。
type rolePostgres struct {
	db *gorm.DB
}

var _ usecase.RoleRepository = (*rolePostgres)(nil)

// NewRolePostgres creates a rolePostgres with the given gorm.DB connection.
func NewRolePostgres(db *gorm.DB) *rolePostgres {
	return &rolePostgres{db: db}
}

// FindByType はロール種別でロールを取得します。
// 存在しない場合、usecase.ErrRoleNotFoundを返します。
func (r *rolePostgres) FindByType(ctx context.Context, t entity.RoleType) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("type = ?", t).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Create はロールをデータベースに追加します。
func (r *rolePostgres) Create(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}
