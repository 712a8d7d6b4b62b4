package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/feature/users/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError maps driver duplicate-key errors onto gorm.ErrDuplicatedKey
// the same way the production Postgres connection does.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Role{}, &entity.User{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedRole inserts one role and returns it.
func seedRole(t *testing.T, db *gorm.DB, name string, roleType entity.RoleType) *entity.Role {
	t.Helper()
	role := &entity.Role{Name: name, Type: roleType}
	require.NoError(t, db.Create(role).Error, "failed to seed role")
	return role
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		role := seedRole(t, db, "employee", entity.RoleEmployee)

		user := &entity.User{
			Name:     "Taro",
			Email:    "taro@example.com",
			Password: "encrypted",
			RoleID:   role.ID,
		}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.NotEmpty(t, user.UUID, "UUID is not assigned")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email maps to ErrEmailAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		role := seedRole(t, db, "employee", entity.RoleEmployee)

		first := &entity.User{Name: "A", Email: "dup@example.com", Password: "x", RoleID: role.ID}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "B", Email: "dup@example.com", Password: "y", RoleID: role.ID}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserPostgres_FindByUUID(t *testing.T) {
	t.Run("found with role preloaded", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		role := seedRole(t, db, "admin", entity.RoleAdmin)

		user := &entity.User{Name: "Taro", Email: "taro@example.com", Password: "x", RoleID: role.ID}
		require.NoError(t, repo.Create(context.Background(), user))

		found, err := repo.FindByUUID(context.Background(), user.UUID)

		require.NoError(t, err)
		assert.Equal(t, user.Email, found.Email)
		require.NotNil(t, found.Role, "role association should be preloaded")
		assert.Equal(t, entity.RoleAdmin, found.Role.Type)
	})

	t.Run("missing uuid maps to ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		found, err := repo.FindByUUID(context.Background(), "no-such-uuid")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		role := seedRole(t, db, "manager", entity.RoleManager)

		user := &entity.User{Name: "Hanako", Email: "hanako@example.com", Password: "x", RoleID: role.ID}
		require.NoError(t, repo.Create(context.Background(), user))

		found, err := repo.FindByEmail(context.Background(), "hanako@example.com")

		require.NoError(t, err)
		assert.Equal(t, user.UUID, found.UUID)
		require.NotNil(t, found.Role)
		assert.Equal(t, "manager", found.Role.Name)
	})

	t.Run("missing email maps to ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	role := seedRole(t, db, "employee", entity.RoleEmployee)

	names := []string{"Alice", "Bob", "alison", "Carol"}
	for i, name := range names {
		user := &entity.User{Name: name, Email: name + "@example.com", Password: "x", RoleID: role.ID}
		require.NoError(t, repo.Create(context.Background(), user))
		// created_at must differ for a stable order
		require.NoError(t, db.Model(user).Update("created_at", time.Now().Add(time.Duration(i)*time.Second)).Error)
	}

	t.Run("returns all ordered newest first", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), 0, 10, "")

		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, users, 4)
		assert.Equal(t, "Carol", users[0].Name, "newest user comes first")
	})

	t.Run("search is case-insensitive on name", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), 0, 10, "ALI")

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Contains(t, []string{"Alice", "alison"}, u.Name)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		users, total, err := repo.List(context.Background(), 2, 2, "")

		require.NoError(t, err)
		assert.Equal(t, int64(4), total, "total counts all filtered rows, not the page")
		assert.Len(t, users, 2)
	})
}

func TestUserPostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	role := seedRole(t, db, "employee", entity.RoleEmployee)

	user := &entity.User{Name: "Taro", Email: "taro@example.com", Password: "x", RoleID: role.ID}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.Delete(context.Background(), user.UUID))

	_, err := repo.FindByUUID(context.Background(), user.UUID)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound, "deleted user must be gone")
}

func TestUserPostgres_SoftDeleteAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	role := seedRole(t, db, "employee", entity.RoleEmployee)

	user := &entity.User{Name: "Taro", Email: "taro@example.com", Password: "x", RoleID: role.ID}
	require.NoError(t, repo.Create(context.Background(), user))

	exists, err := repo.ExistsByUUID(context.Background(), user.UUID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "taro@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.SoftDelete(context.Background(), user.UUID))

	// soft-deleted rows are invisible to the exists checks
	exists, err = repo.ExistsByUUID(context.Background(), user.UUID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "taro@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserPostgres_CountAdmins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	adminRole := seedRole(t, db, "admin", entity.RoleAdmin)
	employeeRole := seedRole(t, db, "employee", entity.RoleEmployee)

	count, err := repo.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	admin := &entity.User{Name: "Boss", Email: "boss@example.com", Password: "x", RoleID: adminRole.ID}
	require.NoError(t, repo.Create(context.Background(), admin))
	worker := &entity.User{Name: "Worker", Email: "worker@example.com", Password: "x", RoleID: employeeRole.ID}
	require.NoError(t, repo.Create(context.Background(), worker))

	count, err = repo.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "only admin-role users are counted")

	require.NoError(t, repo.SoftDelete(context.Background(), admin.UUID))

	count, err = repo.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "soft-deleted admins do not count")
}
