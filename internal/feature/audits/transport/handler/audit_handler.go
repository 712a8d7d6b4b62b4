// Package handler はauditsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/audits/transport/http/dto"
	"template_backend/internal/feature/audits/usecase"
)

// AuditUsecase は監査レコード一覧のユースケースを定義します。
type AuditUsecase interface {
	List(ctx context.Context, page, perPage, search string) (*usecase.ListResult, error)
}

// AuditHandler は監査レコードのHTTPリクエストを処理します。
type AuditHandler struct {
	audits AuditUsecase
}

// NewAuditHandler はAuditHandlerの新しいインスタンスを生成します。
func NewAuditHandler(audits AuditUsecase) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// List はGET /audits/listを処理します。
// クエリパラメータ: page, perPage, search（entity/method部分一致）。
func (h *AuditHandler) List(c *gin.Context) {
	result, err := h.audits.List(
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

	data := make([]dto.ReadAudit, 0, len(result.Audits))
	for i := range result.Audits {
		data = append(data, dto.NewReadAudit(&result.Audits[i]))
	}
	c.JSON(http.StatusOK, dto.ListAuditsResp{
		Data:       data,
		ActualPage: result.ActualPage,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}
