package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditentity "template_backend/internal/feature/audits/domain/entity"
	userentity "template_backend/internal/feature/users/domain/entity"
)

func currentTestUser() *userentity.User {
	return &userentity.User{UUID: "uuid-actor", Name: "Actor", Email: "actor@example.com"}
}

// fakeAuditRecorder hands each record to a channel so tests can wait for
// the detached write.
type fakeAuditRecorder struct {
	records chan *auditentity.Audit
}

func newFakeAuditRecorder() *fakeAuditRecorder {
	return &fakeAuditRecorder{records: make(chan *auditentity.Audit, 8)}
}

func (f *fakeAuditRecorder) Record(ctx context.Context, audit *auditentity.Audit) error {
	f.records <- audit
	return nil
}

// wait returns the next persisted record or fails the test.
func (f *fakeAuditRecorder) wait(t *testing.T) *auditentity.Audit {
	t.Helper()
	select {
	case record := <-f.records:
		return record
	case <-time.After(2 * time.Second):
		t.Fatal("audit record was never written")
		return nil
	}
}

func TestAudit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type userState struct {
		UUID string `json:"uuid"`
		Name string `json:"name"`
	}

	snapshots := map[string]SnapshotFunc{
		"users": func(ctx context.Context, uuid string) (any, error) {
			return userState{UUID: uuid, Name: "before"}, nil
		},
	}

	newRouter := func(recorder AuditRecorder) *gin.Engine {
		r := gin.New()
		api := r.Group("/api/v1")
		api.Use(Audit(recorder, snapshots))
		api.GET("/users/list", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []string{}})
		})
		api.PUT("/users/update", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"name": "after"})
		})
		api.DELETE("/users/delete", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		api.PUT("/widgets/update", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("PUT records old and new state", func(t *testing.T) {
		recorder := newFakeAuditRecorder()
		r := newRouter(recorder)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/v1/users/update?uuid=uuid-1", bytes.NewBufferString(`{"name":"after"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "test-agent")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		record := recorder.wait(t)
		assert.Equal(t, "users", record.Entity)
		assert.Equal(t, http.MethodPut, record.Method)
		assert.Equal(t, "/api/v1/users/update?uuid=uuid-1", record.URL)
		assert.Equal(t, "test-agent", record.UserAgent)
		assert.Nil(t, record.UserUUID, "no guard ran, so no user is attached")

		require.NotNil(t, record.OldData, "old state is captured for PUT")
		var old userState
		require.NoError(t, json.Unmarshal([]byte(*record.OldData), &old))
		assert.Equal(t, "uuid-1", old.UUID)
		assert.Equal(t, "before", old.Name)

		require.NotNil(t, record.NewData, "response body is the new state")
		assert.JSONEq(t, `{"name":"after"}`, *record.NewData)
	})

	t.Run("DELETE resolves the uuid from the request body", func(t *testing.T) {
		recorder := newFakeAuditRecorder()
		r := newRouter(recorder)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/delete", bytes.NewBufferString(`{"uuid":"uuid-9"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		record := recorder.wait(t)
		require.NotNil(t, record.OldData)
		var old userState
		require.NoError(t, json.Unmarshal([]byte(*record.OldData), &old))
		assert.Equal(t, "uuid-9", old.UUID)
	})

	t.Run("GET records neither old nor new state", func(t *testing.T) {
		recorder := newFakeAuditRecorder()
		r := newRouter(recorder)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/list", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		record := recorder.wait(t)
		assert.Equal(t, "users", record.Entity)
		assert.Equal(t, http.MethodGet, record.Method)
		assert.Nil(t, record.OldData)
		assert.Nil(t, record.NewData)
	})

	t.Run("entity without a snapshot mapping skips the old state", func(t *testing.T) {
		recorder := newFakeAuditRecorder()
		r := newRouter(recorder)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/v1/widgets/update?uuid=w-1", bytes.NewBufferString(`{}`))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		record := recorder.wait(t)
		assert.Equal(t, "widgets", record.Entity)
		assert.Nil(t, record.OldData, "unmapped entity fails closed")
		assert.NotNil(t, record.NewData, "the response body is still captured")
	})

	t.Run("guarded request carries the acting user", func(t *testing.T) {
		recorder := newFakeAuditRecorder()
		r := gin.New()
		api := r.Group("/api/v1")
		api.Use(func(c *gin.Context) {
			c.Set(contextUserKey, currentTestUser())
			c.Next()
		}, Audit(recorder, snapshots))
		api.GET("/users/list", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/list", nil)
		r.ServeHTTP(w, req)

		record := recorder.wait(t)
		require.NotNil(t, record.UserUUID)
		assert.Equal(t, "uuid-actor", *record.UserUUID)
	})
}

func TestPathEntity(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/users/update", "users"},
		{"/api/v1/files/create", "files"},
		{"/api/v2/audits/list", "audits"},
		{"/healthz", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := pathEntity(tt.path); got != tt.want {
			t.Errorf("pathEntity(%q): got %q, want %q", tt.path, got, tt.want)
		}
	}
}
