// Package bootstrap establishes process-wide runtime state: the database,
// the cache client, and the founding administrator account.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// foundingAdminID is the identity that carries the admin flag from the first
// boot onward. Admin status is the is_admin column, never an ID comparison at
// request time; pinning the founding account to ID 1 only preserves the
// convention that the first registered identity runs the site.
const foundingAdminID = 1

// InitRuntime connects the database, initializes the cache client, and
// ensures the founding admin exists. Redis being down is not fatal; the
// database being down is.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if err := EnsureFoundingAdmin(context.Background(), db, cfg); err != nil {
		return nil, nil, fmt.Errorf("founding admin bootstrap failed: %w", err)
	}

	return db, cache.GetClient(), nil
}

// EnsureFoundingAdmin guarantees an administrator account exists. When the
// ADMIN_* settings are absent it only promotes an existing user with
// foundingAdminID, so deployments that predate the is_admin column keep
// their admin.
func EnsureFoundingAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.WithContext(ctx).First(&existing, foundingAdminID).Error
	switch {
	case err == nil:
		if existing.IsAdmin {
			return nil
		}
		middleware.Logger.Info("promoting founding account to admin",
			"user_id", existing.ID, "username", existing.Username)
		return db.WithContext(ctx).Model(&existing).Update("is_admin", true).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Fall through to creation below.
	default:
		return err
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		middleware.Logger.Info("no founding admin configured; first registered user will not be privileged")
		return nil
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       foundingAdminID,
		Username: username,
		Email:    cfg.AdminEmail,
		Password: string(hashed),
		IsAdmin:  true,
	}

	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	// Explicit-ID inserts bypass the postgres sequence; advance it so the
	// next registration does not collide with ID 1.
	if db.Dialector.Name() == "postgres" {
		if err := db.WithContext(ctx).Exec(
			"SELECT setval(pg_get_serial_sequence('users', 'id'), GREATEST((SELECT MAX(id) FROM users), 1))",
		).Error; err != nil {
			return err
		}
	}

	middleware.Logger.Info("founding admin created", "username", username, "email", cfg.AdminEmail)
	return nil
}
