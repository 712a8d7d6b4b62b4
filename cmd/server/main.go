package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"template_backend/internal/app/bootstrap"
	"template_backend/internal/app/middleware"
	"template_backend/internal/app/router"
	auditadapters "template_backend/internal/feature/audits/adapters"
	audithandler "template_backend/internal/feature/audits/transport/handler"
	auditusecase "template_backend/internal/feature/audits/usecase"
	authhandler "template_backend/internal/feature/auth/transport/handler"
	authusecase "template_backend/internal/feature/auth/usecase"
	fileadapters "template_backend/internal/feature/files/adapters"
	filehandler "template_backend/internal/feature/files/transport/handler"
	fileusecase "template_backend/internal/feature/files/usecase"
	logadapters "template_backend/internal/feature/logs/adapters"
	loghandler "template_backend/internal/feature/logs/transport/handler"
	logusecase "template_backend/internal/feature/logs/usecase"
	useradapters "template_backend/internal/feature/users/adapters"
	userhandler "template_backend/internal/feature/users/transport/handler"
	userusecase "template_backend/internal/feature/users/usecase"
	"template_backend/internal/platform/config"
	"template_backend/internal/platform/crypto"
	"template_backend/internal/platform/db"
	jwtauth "template_backend/internal/platform/jwt"
)

func main() {
	// .envがあれば読み込む（本番では環境変数のみ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// db
	conn := db.OpenDB(cfg)

	cipher := crypto.NewCipher(cfg.CryptoSecretKey)
	issuer := jwtauth.NewIssuer(cfg.JWTSecret, jwtauth.SessionTTL)

	// Repository
	userRepo := useradapters.NewUserPostgres(conn)
	roleRepo := useradapters.NewRolePostgres(conn)
	fileRepo := fileadapters.NewFilePostgres(conn)
	auditRepo := auditadapters.NewAuditPostgres(conn)
	logRepo := logadapters.NewLogPostgres(conn)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, roleRepo, cipher)
	authUC := authusecase.NewAuthUsecase(userRepo, userUC, cipher, issuer)
	fileUC := fileusecase.NewFileUsecase(fileRepo, uploadDir())
	auditUC := auditusecase.NewAuditUsecase(auditRepo)
	logUC := logusecase.NewLogUsecase(logRepo)

	// 監査の旧状態キャプチャ対象。マップにないエンティティは記録のみで
	// 旧状態なしになる。
	snapshots := map[string]middleware.SnapshotFunc{
		"users": func(ctx context.Context, uuid string) (any, error) {
			return userRepo.FindByUUID(ctx, uuid)
		},
		"files": func(ctx context.Context, uuid string) (any, error) {
			return fileRepo.FindByUUID(ctx, uuid)
		},
	}

	r := router.NewRouter(cfg, router.Handlers{
		Auth:   authhandler.NewAuthHandler(authUC),
		Users:  userhandler.NewUserHandler(userUC),
		Files:  filehandler.NewFileHandler(fileUC),
		Audits: audithandler.NewAuditHandler(auditUC),
		Logs:   loghandler.NewLogHandler(logUC),
	}, router.Middleware{
		Errors: middleware.ErrorHandler(logUC),
		Auth:   middleware.AuthRequired(issuer, userRepo),
		Audit:  middleware.Audit(auditUC, snapshots),
	})

	// ロールと初期管理者のシードはリクエストを受ける前に完了させる
	if err := bootstrap.Run(context.Background(), roleRepo, userUC, cfg); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if err := r.Run(cfg.HTTPAddress()); err != nil {
		log.Fatal(err)
	}
}

// uploadDir はアップロード保存先ディレクトリを返します。
func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}
