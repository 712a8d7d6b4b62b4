// Package bootstrap seeds the reference data the application expects at
// startup: the fixed role set and the first admin account.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/feature/users/usecase"
	"template_backend/internal/platform/config"
)

// seededRoles is the fixed role catalogue. Display name on the left,
// discriminator on the right.
var seededRoles = []entity.Role{
	{Name: "admin", Type: entity.RoleAdmin},
	{Name: "manager", Type: entity.RoleManager},
	{Name: "employee", Type: entity.RoleEmployee},
}

// Run seeds missing roles and then the bootstrap admin user. It is
// idempotent: existing rows are left untouched, and concurrent starters
// racing on the same database are caught by the unique indexes.
func Run(ctx context.Context, roles usecase.RoleRepository, users *usecase.UserUsecase, cfg *config.Config) error {
	for _, role := range seededRoles {
		if _, err := roles.FindByType(ctx, role.Type); err == nil {
			continue
		} else if !errors.Is(err, usecase.ErrRoleNotFound) {
			return err
		}

		r := role
		if err := roles.Create(ctx, &r); err != nil {
			// another starter won the insert race on the unique type index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				slog.Warn("role already seeded by another instance", "type", r.Type)
				continue
			}
			return err
		}
		slog.Info("seeded role", "type", r.Type)
	}

	if err := users.InitAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	return nil
}
