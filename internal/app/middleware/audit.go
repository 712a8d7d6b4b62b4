package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/audits/domain/entity"
)

// auditWriteTimeout bounds the detached audit write. The client response
// is never delayed by it.
const auditWriteTimeout = 5 * time.Second

// AuditRecorder persists one audit record.
type AuditRecorder interface {
	Record(ctx context.Context, audit *entity.Audit) error
}

// SnapshotFunc fetches the current state of one record by UUID, used as
// the audit's old-state capture before a mutation runs.
type SnapshotFunc func(ctx context.Context, uuid string) (any, error)

// Audit returns the audit interceptor for guarded routes. The audited
// entity name is the positional path segment after the API prefix
// (/api/v1/users/update -> "users"). Old state is captured before the
// handler for PUT/DELETE via the snapshots map; for entities without a
// mapping the capture is skipped with a warning, never an error in the
// request path. The response body of PUT/PATCH/DELETE is
// the new state. The record itself is written fire-and-forget.
func Audit(audits AuditRecorder, snapshots map[string]SnapshotFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityName := pathEntity(c.Request.URL.Path)
		method := c.Request.Method

		var oldData *string
		if method == http.MethodPut || method == http.MethodDelete {
			oldData = captureOldData(c, entityName, snapshots)
		}

		buf := &bytes.Buffer{}
		bw := &bodyWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw

		c.Next()

		c.Writer = bw.ResponseWriter

		var newData *string
		switch method {
		case http.MethodPut, http.MethodPatch, http.MethodDelete:
			if body := buf.String(); body != "" {
				newData = &body
			}
		}

		var userUUID *string
		if user, ok := CurrentUser(c); ok {
			uuid := user.UUID
			userUUID = &uuid
		}

		record := &entity.Audit{
			Entity:    entityName,
			Method:    method,
			URL:       c.Request.URL.RequestURI(),
			UserUUID:  userUUID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			OldData:   oldData,
			NewData:   newData,
		}

		// 監査書き込みはレスポンス送信と順序付けされない（ベストエフォート）。
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()
			if err := audits.Record(ctx, record); err != nil {
				slog.Error("audit write failed", "entity", record.Entity, "method", record.Method, "error", err)
			}
		}()
	}
}

// captureOldData resolves the request's uuid and fetches the current
// record through the snapshot map before the handler mutates it.
func captureOldData(c *gin.Context, entityName string, snapshots map[string]SnapshotFunc) *string {
	lookup, ok := snapshots[entityName]
	if !ok {
		slog.Warn("no snapshot mapping for audited entity, skipping old-state capture", "entity", entityName)
		return nil
	}

	uuid := requestUUID(c)
	if uuid == "" {
		return nil
	}

	current, err := lookup(c.Request.Context(), uuid)
	if err != nil {
		slog.Warn("old-state capture failed", "entity", entityName, "uuid", uuid, "error", err)
		return nil
	}

	raw, err := json.Marshal(current)
	if err != nil {
		slog.Warn("old-state marshal failed", "entity", entityName, "uuid", uuid, "error", err)
		return nil
	}
	s := string(raw)
	return &s
}

// requestUUID reads the uuid from the query string, falling back to a
// uuid field in the JSON body. The body is restored for the handler.
func requestUUID(c *gin.Context) string {
	if uuid := c.Query("uuid"); uuid != "" {
		return uuid
	}
	if c.Request.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.UUID
}

// pathEntity returns the audited entity name: the 3rd path component,
// i.e. the segment after the /api/{version} prefix. An unexpected URL
// shape yields "".
func pathEntity(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		return parts[3]
	}
	return ""
}

// bodyWriter tees the response body so the interceptor can read the
// handler's payload after the chain completes.
type bodyWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
