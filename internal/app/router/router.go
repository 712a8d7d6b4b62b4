// Package router wires the HTTP surface: CORS, the global error handler,
// the open auth routes and the guarded, audited API group.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	audithandler "template_backend/internal/feature/audits/transport/handler"
	authhandler "template_backend/internal/feature/auth/transport/handler"
	filehandler "template_backend/internal/feature/files/transport/handler"
	loghandler "template_backend/internal/feature/logs/transport/handler"
	userhandler "template_backend/internal/feature/users/transport/handler"
	"template_backend/internal/platform/config"
)

// Handlers groups the per-feature HTTP handlers the router mounts.
type Handlers struct {
	Auth   *authhandler.AuthHandler
	Users  *userhandler.UserHandler
	Files  *filehandler.FileHandler
	Audits *audithandler.AuditHandler
	Logs   *loghandler.LogHandler
}

// Middleware groups the pipeline stages applied to guarded routes.
type Middleware struct {
	Errors gin.HandlerFunc
	Auth   gin.HandlerFunc
	Audit  gin.HandlerFunc
}

// NewRouter builds the gin engine with every route mounted under the
// versioned API prefix.
func NewRouter(cfg *config.Config, h Handlers, mw Middleware) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(mw.Errors)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", Health)

	api := r.Group(cfg.APIPrefix())

	// ログイン（JWT 発行）と新規ユーザー登録は認証不要
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register", h.Auth.Register)

	// 認証必須のルート。ガードが現在のユーザーを添付し、
	// 監査インターセプターが全操作を記録する。
	auth := api.Group("/")
	auth.Use(mw.Auth, mw.Audit)
	{
		auth.GET("/auth/verify-token", h.Auth.VerifyToken)

		auth.POST("/users/create", h.Users.Create)
		auth.GET("/users/find-by-uuid", h.Users.GetByUUID)
		auth.GET("/users/list", h.Users.List)
		auth.PUT("/users/update", h.Users.Update)
		auth.PATCH("/users/update", h.Users.Patch)
		auth.DELETE("/users/delete", h.Users.Delete)

		auth.POST("/files/create", h.Files.Create)

		auth.GET("/audits/list", h.Audits.List)
		auth.GET("/logs/list", h.Logs.List)
	}

	return r
}

// Health はGET /healthzを処理します。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
