package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	auditentity "template_backend/internal/feature/audits/domain/entity"
	fileentity "template_backend/internal/feature/files/domain/entity"
	logentity "template_backend/internal/feature/logs/domain/entity"
	userentity "template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/platform/config"
)

// OpenDB は設定からPostgres接続を開きます。起動直後のDB未準備に備えて
// 60秒まで再試行します。
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, port)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate はこのサービスが永続化する全テーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userentity.Role{},
		&userentity.User{},
		&fileentity.File{},
		&auditentity.Audit{},
		&logentity.Log{},
	)
}
