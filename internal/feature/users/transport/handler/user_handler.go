// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/feature/users/transport/http/dto"
	"template_backend/internal/feature/users/usecase"
	"template_backend/internal/shared/apperr"
	"template_backend/internal/shared/pagination"
)

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)
	List(ctx context.Context, page, perPage int, search string) (*usecase.ListResult, error)
	UpdateUser(ctx context.Context, uuid string, in usecase.UpdateUserInput) (*entity.User, error)
	PatchUser(ctx context.Context, uuid string, in usecase.PatchUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, uuid string) (*usecase.DeleteResult, error)
}

// UserHandler はユーザー管理のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create はPOST /users/createを処理します。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	slog.Info("user created", "uuid", user.UUID, "email", user.Email)
	c.JSON(http.StatusCreated, dto.NewReadUser(user))
}

// GetByUUID はGET /users/find-by-uuid?uuid=を処理します。
func (h *UserHandler) GetByUUID(c *gin.Context) {
	id, ok := requireUUID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByUUID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadUser(user))
}

// List はGET /users/list?page=&dataPerPage=&search=を処理します。
// 不正なページ指定はエラーにせずデフォルト値に丸められます。
func (h *UserHandler) List(c *gin.Context) {
	page, perPage := pagination.Normalize(c.Query("page"), c.Query("dataPerPage"))
	result, err := h.users.List(c.Request.Context(), page, perPage, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]dto.ReadUser, 0, len(result.Users))
	for i := range result.Users {
		out = append(out, dto.NewReadUser(&result.Users[i]))
	}
	c.JSON(http.StatusOK, dto.ListUsersResp{
		Data:       out,
		ActualPage: result.ActualPage,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}

// Update はPUT /users/update?uuid=を処理します。
// レスポンスのroleフィールドには機械可読のロール種別が入ります。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := requireUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadUserWithType(user))
}

// Patch はPATCH /users/update?uuid=を処理します。
// 含まれるフィールドのみ更新されます。
func (h *UserHandler) Patch(c *gin.Context) {
	id, ok := requireUUID(c)
	if !ok {
		return
	}
	var req dto.PatchUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	user, err := h.users.PatchUser(c.Request.Context(), id, usecase.PatchUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadUserWithType(user))
}

// Delete はDELETE /users/delete?uuid=を処理します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := requireUUID(c)
	if !ok {
		return
	}
	result, err := h.users.DeleteUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResp{
		Success:    result.Success,
		StatusCode: result.StatusCode,
		Message:    result.Message,
	})
}

// requireUUID はuuidクエリパラメータを検証します。
func requireUUID(c *gin.Context) (string, bool) {
	id := c.Query("uuid")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, apperr.BadRequest("Validation failed (uuid is expected)"))
		return "", false
	}
	return id, true
}

// fail はエラーをグローバルエラーミドルウェアに委譲します。
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
