// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/feature/users/usecase"
)

// userPostgres はUserRepositoryインターフェースのPostgres実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUUID はUUIDでユーザーをロール付きで取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Role").Where("uuid = ?", uuid).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はメールアドレスでユーザーをロール付きで取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List は作成日時の降順でユーザーを返します。searchは名前の
// 大文字小文字を区別しない部分一致です。
func (r *userPostgres) List(ctx context.Context, offset, limit int, search string) ([]entity.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	if err := q.Preload("Role").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Save は既存ユーザーの変更を永続化します。
func (r *userPostgres) Save(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete はユーザーを物理削除します。
func (r *userPostgres) Delete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&entity.User{}).Error
}

// SoftDelete はDeletedAtを現在時刻に設定します。
func (r *userPostgres) SoftDelete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("uuid = ?", uuid).
		Update("deleted_at", time.Now()).Error
}

// ExistsByEmail は未削除ユーザーにメールアドレスが存在するか返します。
func (r *userPostgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("deleted_at IS NULL AND email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUUID は未削除ユーザーにUUIDが存在するか返します。
func (r *userPostgres) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("deleted_at IS NULL AND uuid = ?", uuid).
		Count(&count).Error
	return count > 0, err
}

// CountAdmins は未削除のADMINロールユーザー数を返します。
func (r *userPostgres) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.deleted_at IS NULL AND roles.type = ?", entity.RoleAdmin).
		Count(&count).Error
	return count, err
}
