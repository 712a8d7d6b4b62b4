// Package handler はfilesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/files/domain/entity"
	"template_backend/internal/feature/files/transport/http/dto"
	"template_backend/internal/feature/files/usecase"
	"template_backend/internal/shared/apperr"
)

// FileUsecase はファイル操作のユースケースを定義します。
type FileUsecase interface {
	Create(ctx context.Context, up usecase.Upload) (*entity.File, error)
}

// FileHandler はファイルアップロードのHTTPリクエストを処理します。
type FileHandler struct {
	files FileUsecase
}

// NewFileHandler はFileHandlerの新しいインスタンスを生成します。
func NewFileHandler(files FileUsecase) *FileHandler {
	return &FileHandler{files: files}
}

// Create はPOST /files/create（multipart）を処理します。
// フォームフィールド"file"のアップロードを保存し、メタデータを返します。
func (h *FileHandler) Create(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}

	src, err := header.Open()
	if err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	defer src.Close()

	file, err := h.files.Create(c.Request.Context(), usecase.Upload{
		Filename: header.Filename,
		Mimetype: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  src,
	})
	if err != nil {
		fail(c, err)
		return
	}
	slog.Info("file uploaded", "uuid", file.UUID, "filename", file.Filename, "size", file.Size)
	c.JSON(http.StatusCreated, dto.NewReadFile(file))
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
