// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"template_backend/internal/app/middleware"
	"template_backend/internal/feature/auth/transport/http/dto"
	"template_backend/internal/feature/auth/usecase"
	"template_backend/internal/feature/users/domain/entity"
	usersdto "template_backend/internal/feature/users/transport/http/dto"
	"template_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// Register は新規ユーザーを登録し、そのユーザーのトークンを発行します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はPOST /auth/loginを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400
// - 認証失敗時は401
// - 成功時はアクセストークンとユーザーを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResp{
		AccessToken: token,
		User:        usersdto.NewReadUser(user),
	})
}

// Register はPOST /auth/registerを処理します。
// - メール重複時は400
// - 未知のロール指定時は400
// - 成功時はアクセストークンと作成ユーザーを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	token, user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		slog.Warn("registration failed", "email", req.Email, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user registered", "uuid", user.UUID, "email", user.Email)
	c.JSON(http.StatusCreated, dto.AuthResp{
		AccessToken: token,
		User:        usersdto.NewReadUser(user),
	})
}

// VerifyToken はGET /auth/verify-tokenを処理します。ガードを通過した
// 時点でトークンは有効なので、コンテキストの現在ユーザーを返すだけです。
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, usersdto.NewReadUser(user))
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
