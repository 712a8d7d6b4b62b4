// Package handler はlogsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/logs/transport/http/dto"
	"template_backend/internal/feature/logs/usecase"
)

// LogUsecase はエラーログ一覧のユースケースを定義します。
type LogUsecase interface {
	List(ctx context.Context, page, perPage, search string) (*usecase.ListResult, error)
}

// LogHandler はエラーログのHTTPリクエストを処理します。
type LogHandler struct {
	logs LogUsecase
}

// NewLogHandler はLogHandlerの新しいインスタンスを生成します。
func NewLogHandler(logs LogUsecase) *LogHandler {
	return &LogHandler{logs: logs}
}

// List はGET /logs/listを処理します。
// クエリパラメータ: page, perPage, search（errorテキスト部分一致）。
func (h *LogHandler) List(c *gin.Context) {
	result, err := h.logs.List(
		c.Request.Context(),
		c.Query("page"),
		c.Query("perPage"),
		c.Query("search"),
	)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	data := make([]dto.ReadLog, 0, len(result.Logs))
	for i := range result.Logs {
		data = append(data, dto.NewReadLog(&result.Logs[i]))
	}
	c.JSON(http.StatusOK, dto.ListLogsResp{
		Data:       data,
		ActualPage: result.ActualPage,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}
