// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	"time"

	"template_backend/internal/feature/users/domain/entity"
)

// CreateUserReq represents the request body for the /users/create endpoint.
// It uses Gin's binding tags for validation.
type CreateUserReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserReq は/users/updateエンドポイントのリクエストボディを表します。
type UpdateUserReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// PatchUserReq は/users/updateへのPATCHリクエストボディを表します。
// 省略されたフィールドは変更されません。
type PatchUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"`
}

// ReadUser is the user payload returned by user and auth endpoints.
type ReadUser struct {
	UUID      string     `json:"uuid"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Password  string     `json:"password"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// NewReadUser maps a user entity to its response shape. The role field
// carries the role's display name.
func NewReadUser(u *entity.User) ReadUser {
	return ReadUser{
		UUID:      u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.RoleName(),
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

// NewReadUserWithType is NewReadUser with the machine-readable role type
// in the role field. The update endpoint responds with this shape.
func NewReadUserWithType(u *entity.User) ReadUser {
	r := NewReadUser(u)
	r.Role = u.RoleType()
	return r
}

// ListUsersResp is one page of users plus pagination totals.
type ListUsersResp struct {
	Data       []ReadUser `json:"data"`
	ActualPage int        `json:"actualPage"`
	TotalPages int        `json:"totalPages"`
	Total      int64      `json:"total"`
}

// DeleteResp is the response shape of delete endpoints.
type DeleteResp struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
