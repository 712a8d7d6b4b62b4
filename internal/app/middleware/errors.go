package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/logs/domain/entity"
	"template_backend/internal/shared/apperr"
)

// ErrorResp is the JSON body written for every classified error.
type ErrorResp struct {
	Message       string `json:"message"`
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

// ErrorLogRecorder persists one error-log record.
type ErrorLogRecorder interface {
	Record(ctx context.Context, log *entity.Log) error
}

// ErrorHandler returns the global exception middleware. All errors
// attached to the context funnel through it: AppErrors keep their
// (code, text, message) triple, everything else defaults to 500. One
// error-log row is persisted per exception; a failed log write is
// observed but never retried and never fails the response.
func ErrorHandler(logs ErrorLogRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		resp := classify(err)

		record := &entity.Log{
			Error:      resp.Message,
			StatusCode: resp.StatusCode,
			StatusText: resp.StatusMessage,
			Method:     c.Request.Method,
			Path:       c.Request.URL.RequestURI(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if logErr := logs.Record(c.Request.Context(), record); logErr != nil {
			slog.Error("failed to persist error log", "path", record.Path, "error", logErr)
		}

		if !c.Writer.Written() {
			c.JSON(resp.StatusCode, resp)
		}
	}
}

// classify maps an error to its response triple.
func classify(err error) ErrorResp {
	resp := ErrorResp{
		Message:       "An unexpected error occurred",
		StatusCode:    http.StatusInternalServerError,
		StatusMessage: apperr.TextInternalServerError,
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.StatusCode = appErr.StatusCode
		resp.StatusMessage = appErr.StatusText
		return resp
	}

	if err != nil && err.Error() != "" {
		resp.Message = err.Error()
	}
	return resp
}
