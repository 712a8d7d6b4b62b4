package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"template_backend/internal/feature/logs/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Log{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestLogPostgres_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogPostgres(db)

	record := &entity.Log{
		Error:      "User not found.",
		StatusCode: 404,
		StatusText: "Not Found",
		Method:     "GET",
		Path:       "/api/v1/users/find-by-uuid?uuid=x",
		IP:         "127.0.0.1",
		UserAgent:  "test-agent",
	}
	err := repo.Create(context.Background(), record)

	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.NotEmpty(t, record.UUID)
}

func TestLogPostgres_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogPostgres(db)

	seed := []entity.Log{
		{Error: "User not found.", StatusCode: 404, StatusText: "Not Found"},
		{Error: "unauthorized", StatusCode: 401, StatusText: "Unauthorized"},
		{Error: "Email already registered!", StatusCode: 400, StatusText: "Bad Request"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
		require.NoError(t, db.Model(&seed[i]).Update("created_at", time.Now().Add(time.Duration(i)*time.Second)).Error)
	}

	t.Run("all records newest first", func(t *testing.T) {
		logs, total, err := repo.List(context.Background(), 0, 10, "")

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, logs, 3)
		assert.Equal(t, "Email already registered!", logs[0].Error)
	})

	t.Run("search matches the error text case-insensitively", func(t *testing.T) {
		logs, total, err := repo.List(context.Background(), 0, 10, "NOT FOUND")

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		assert.Equal(t, 404, logs[0].StatusCode)
	})
}
