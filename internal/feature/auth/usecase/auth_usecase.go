// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"template_backend/internal/feature/users/domain/entity"
	usersusecase "template_backend/internal/feature/users/usecase"
	"template_backend/internal/platform/jwt"
	"template_backend/internal/shared/apperr"
)

// UserReader はメールアドレスによるユーザー検索を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserReader interface {
	// FindByEmail はメールアドレスに一致するユーザーをロール付きで取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AccountService covers the user-management operations registration
// relies on. It is satisfied by the users usecase.
type AccountService interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, in usersusecase.CreateUserInput) (*entity.User, error)
}

// PasswordCipher compares a presented password against the stored
// ciphertext.
type PasswordCipher interface {
	Compare(plaintext, ciphertext string) (bool, error)
}

// TokenIssuer issues and verifies session tokens.
type TokenIssuer interface {
	Issue(userUUID, name, email string) (string, error)
	Verify(token string) (*jwtauth.Claims, error)
}

// RegisterInput carries the fields accepted by registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users    UserReader
	accounts AccountService
	cipher   PasswordCipher
	tokens   TokenIssuer
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserReader, accounts AccountService, cipher PasswordCipher, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, accounts: accounts, cipher: cipher, tokens: tokens}
}

// Login はユーザーを認証し、成功時にトークンとユーザーを返します。
// 未知のメールアドレス・パスワード不一致・暗号失敗はすべて同一の
// Unauthorizedとして報告されます。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Unauthorized("unauthorized")
	}

	ok, err := u.cipher.Compare(password, user.Password)
	if err != nil || !ok {
		return "", nil, apperr.Unauthorized("unauthorized")
	}

	token, err := u.tokens.Issue(user.UUID, user.Name, user.Email)
	if err != nil {
		return "", nil, apperr.Unauthorized("unauthorized")
	}
	return token, user, nil
}

// Register は新規ユーザーを作成し、そのユーザーのトークンを発行します。
// 各ステップは逐次実行され、失敗時点で打ち切られます。永続化の後に
// トークン発行が失敗してもロールバックは行われません（ユーザー行は残ります）。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	taken, err := u.accounts.CheckEmail(ctx, in.Email)
	if err != nil {
		return "", nil, apperr.BadRequest(err.Error())
	}
	if taken {
		return "", nil, apperr.BadRequest("Email already registered!")
	}

	user, err := u.accounts.Create(ctx, usersusecase.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := u.tokens.Issue(user.UUID, user.Name, user.Email)
	if err != nil {
		return "", nil, apperr.Unauthorized("Not authorized. Check your credentials!")
	}
	return token, user, nil
}

// IsValidToken は検証エラーを真偽値に畳み込む薄いラッパーです。
func (u *AuthUsecase) IsValidToken(token string) bool {
	_, err := u.tokens.Verify(token)
	return err == nil
}

// IsUnauthorized reports whether err carries a 401 classification.
func IsUnauthorized(err error) bool {
	var appErr *apperr.AppError
	return errors.As(err, &appErr) && appErr.StatusCode == 401
}
