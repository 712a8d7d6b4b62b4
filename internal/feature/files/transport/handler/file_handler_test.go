package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"template_backend/internal/app/middleware"
	"template_backend/internal/feature/files/domain/entity"
	"template_backend/internal/feature/files/usecase"
	logentity "template_backend/internal/feature/logs/domain/entity"
	"template_backend/internal/shared/apperr"
)

// mockFileUsecase is a mock implementation of the FileUsecase interface.
type mockFileUsecase struct {
	CreateFunc func(ctx context.Context, up usecase.Upload) (*entity.File, error)
}

func (m *mockFileUsecase) Create(ctx context.Context, up usecase.Upload) (*entity.File, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, up)
	}
	return nil, apperr.BadRequest("not implemented")
}

// nopLogRecorder satisfies the error middleware without persistence.
type nopLogRecorder struct{}

func (nopLogRecorder) Record(ctx context.Context, log *logentity.Log) error { return nil }

func newFileRouter(uc FileUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFileHandler(uc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(nopLogRecorder{}))
	r.POST("/files/create", h.Create)
	return r
}

// multipartUpload builds a multipart body carrying one "file" field.
func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestFileHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockFileUsecase{
			CreateFunc: func(ctx context.Context, up usecase.Upload) (*entity.File, error) {
				assert.Equal(t, "report.pdf", up.Filename)

				content, err := io.ReadAll(up.Content)
				require.NoError(t, err)
				assert.Equal(t, "PDF-CONTENT", string(content))

				return &entity.File{
					UUID:     "file-uuid",
					Filename: up.Filename,
					Mimetype: up.Mimetype,
					Size:     up.Size,
				}, nil
			},
		}
		r := newFileRouter(uc)

		body, contentType := multipartUpload(t, "report.pdf", "PDF-CONTENT")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/files/create", body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "file-uuid", resp["uuid"])
		assert.Equal(t, "report.pdf", resp["filename"])
	})

	t.Run("missing file field", func(t *testing.T) {
		r := newFileRouter(&mockFileUsecase{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/files/create", bytes.NewBufferString("not multipart"))
		req.Header.Set("Content-Type", "text/plain")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc := &mockFileUsecase{
			CreateFunc: func(ctx context.Context, up usecase.Upload) (*entity.File, error) {
				return nil, apperr.BadRequest("disk full")
			},
		}
		r := newFileRouter(uc)

		body, contentType := multipartUpload(t, "a.txt", "x")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/files/create", body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "disk full")
	})
}
