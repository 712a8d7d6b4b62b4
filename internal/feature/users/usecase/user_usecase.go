package usecase

import (
	"context"
	"errors"
	"net/http"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/shared/apperr"
	"template_backend/internal/shared/pagination"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUUID はUUIDに一致するユーザーをロール付きで取得します。
	FindByUUID(ctx context.Context, uuid string) (*entity.User, error)

	// FindByEmail はメールアドレスに一致するユーザーをロール付きで取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List は作成日時の降順でユーザーを返します。searchが空でない場合、
	// 名前の大文字小文字を区別しない部分一致で絞り込みます。
	// 2番目の戻り値は絞り込み後の総件数です。
	List(ctx context.Context, offset, limit int, search string) ([]entity.User, int64, error)

	// Save は既存ユーザーの変更を永続化します。
	Save(ctx context.Context, user *entity.User) error

	// Delete はユーザーを物理削除します。
	Delete(ctx context.Context, uuid string) error

	// SoftDelete はDeletedAtを設定して論理削除します。
	SoftDelete(ctx context.Context, uuid string) error

	// ExistsByEmail は未削除ユーザーにメールアドレスが存在するか返します。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUUID は未削除ユーザーにUUIDが存在するか返します。
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)

	// CountAdmins は未削除のADMINロールユーザー数を返します。
	CountAdmins(ctx context.Context) (int64, error)
}

// RoleRepository abstracts the persistence layer for role entities.
type RoleRepository interface {
	// FindByType retrieves the role with the given type.
	// It returns ErrRoleNotFound if the role does not exist.
	FindByType(ctx context.Context, t entity.RoleType) (*entity.Role, error)

	// Create persists a new role.
	Create(ctx context.Context, role *entity.Role) error
}

// PasswordCipher encrypts passwords before they are persisted.
type PasswordCipher interface {
	Encrypt(plaintext string) (string, error)
}

// CreateUserInput carries the fields accepted by user creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries the fields accepted by a full user update.
// The role is re-resolved to a role row on every update.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// PatchUserInput carries the optional fields of a partial update. A nil
// field keeps the stored value.
type PatchUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// DeleteResult is the response shape of a delete operation.
type DeleteResult struct {
	Success    bool
	StatusCode int
	Message    string
}

// ListResult is one page of users plus pagination totals.
type ListResult struct {
	Users      []entity.User
	Total      int64
	TotalPages int
	ActualPage int
}

// UserUsecase implements user management on top of the repositories and
// the password cipher.
type UserUsecase struct {
	users  UserRepository
	roles  RoleRepository
	cipher PasswordCipher
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, roles RoleRepository, cipher PasswordCipher) *UserUsecase {
	return &UserUsecase{users: users, roles: roles, cipher: cipher}
}

// CheckEmail reports whether a non-deleted user already holds the email.
func (u *UserUsecase) CheckEmail(ctx context.Context, email string) (bool, error) {
	return u.users.ExistsByEmail(ctx, email)
}

// Create resolves the requested role, encrypts the password and persists
// the user. It does not check email uniqueness itself; callers decide
// their own duplicate-email message. Every failure is reported as
// Bad Request carrying the underlying message.
func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	roleType, ok := entity.ParseRoleType(in.Role)
	if !ok {
		return nil, apperr.BadRequest("role not found in the database")
	}

	role, err := u.roles.FindByType(ctx, roleType)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return nil, apperr.BadRequest("role not found in the database")
		}
		return nil, apperr.BadRequest(err.Error())
	}

	encrypted, err := u.cipher.Encrypt(in.Password)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: encrypted,
		RoleID:   role.ID,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	created, err := u.users.FindByUUID(ctx, user.UUID)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return created, nil
}

// CreateUser is the users/create command: duplicate emails are rejected
// before the row is written.
func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	taken, err := u.CheckEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if taken {
		return nil, apperr.BadRequest("User already exists with this email.")
	}
	return u.Create(ctx, in)
}

// GetByUUID returns the user with the given UUID including its role.
func (u *UserUsecase) GetByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	user, err := u.users.FindByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.BadRequest(err.Error())
	}
	return user, nil
}

// List returns one page of users ordered newest first, optionally
// filtered by a case-insensitive name search. Page and size inputs were
// already normalized by the transport layer.
func (u *UserUsecase) List(ctx context.Context, page, perPage int, search string) (*ListResult, error) {
	users, total, err := u.users.List(ctx, pagination.Offset(page, perPage), perPage, search)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &ListResult{
		Users:      users,
		Total:      total,
		TotalPages: pagination.TotalPages(total, perPage),
		ActualPage: page,
	}, nil
}

// UpdateUser replaces the user's name, email and role. The role is
// re-resolved by type on every update.
func (u *UserUsecase) UpdateUser(ctx context.Context, uuid string, in UpdateUserInput) (*entity.User, error) {
	roleType, ok := entity.ParseRoleType(in.Role)
	if !ok {
		return nil, apperr.BadRequest("role not found")
	}
	role, err := u.roles.FindByType(ctx, roleType)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return nil, apperr.BadRequest("role not found")
		}
		return nil, apperr.BadRequest(err.Error())
	}

	user, err := u.users.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	user.Name = in.Name
	user.Email = in.Email
	user.RoleID = role.ID
	user.Role = role
	if err := u.users.Save(ctx, user); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	updated, err := u.users.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return updated, nil
}

// PatchUser updates only the provided fields. The role, when present, is
// re-resolved by type like a full update.
func (u *UserUsecase) PatchUser(ctx context.Context, uuid string, in PatchUserInput) (*entity.User, error) {
	user, err := u.users.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if in.Role != nil {
		roleType, ok := entity.ParseRoleType(*in.Role)
		if !ok {
			return nil, apperr.BadRequest("role not found")
		}
		role, err := u.roles.FindByType(ctx, roleType)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				return nil, apperr.BadRequest("role not found")
			}
			return nil, apperr.BadRequest(err.Error())
		}
		user.RoleID = role.ID
		user.Role = role
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	updated, err := u.users.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return updated, nil
}

// DeleteUser removes the user physically. A missing uuid is reported as
// Bad Request carrying the not-found message.
func (u *UserUsecase) DeleteUser(ctx context.Context, uuid string) (*DeleteResult, error) {
	exists, err := u.users.ExistsByUUID(ctx, uuid)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if !exists {
		notFound := apperr.NotFound("User not found")
		return nil, apperr.BadRequest(notFound.Message)
	}
	if err := u.users.Delete(ctx, uuid); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &DeleteResult{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    "User deleted successfully!",
	}, nil
}

// SoftDeleteUser marks the user as logically deleted without removing
// the row.
func (u *UserUsecase) SoftDeleteUser(ctx context.Context, uuid string) error {
	if err := u.users.SoftDelete(ctx, uuid); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}

// InitAdmin creates the bootstrap admin user from configuration when no
// non-deleted admin exists. It is idempotent per instance.
func (u *UserUsecase) InitAdmin(ctx context.Context, name, email, password string) error {
	count, err := u.users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = u.Create(ctx, CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     "admin",
	})
	return err
}
