// Package dto defines data transfer objects for the logs feature's HTTP transport layer.
package dto

import (
	"time"

	"template_backend/internal/feature/logs/domain/entity"
)

// ReadLog is the error-log payload returned by the list endpoint.
type ReadLog struct {
	UUID       string    `json:"uuid"`
	Error      string    `json:"error"`
	StatusCode int       `json:"statusCode"`
	StatusText string    `json:"statusText"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReadLog maps a log entity to its response shape.
func NewReadLog(l *entity.Log) ReadLog {
	return ReadLog{
		UUID:       l.UUID,
		Error:      l.Error,
		StatusCode: l.StatusCode,
		StatusText: l.StatusText,
		Method:     l.Method,
		Path:       l.Path,
		IP:         l.IP,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}

// ListLogsResp is the paginated list response.
type ListLogsResp struct {
	Data       []ReadLog `json:"data"`
	ActualPage int       `json:"actualPage"`
	TotalPages int       `json:"totalPages"`
	Total      int64     `json:"total"`
}
