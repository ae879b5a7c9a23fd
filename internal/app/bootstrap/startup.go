// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mefen/volunteerhub/internal/app/resources"
	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.AdminEmail != "" {
		if err := ensureAdminUser(ctx, deps, appCfg, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureAdminUser creates the initial admin account so a fresh deployment
// has someone who can sign in and create the rest of the accounts.
func ensureAdminUser(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	email := normalize.Email(appCfg.AdminEmail)

	created, err := userstore.New(deps.MongoDatabase).EnsureAdmin(ctx, appCfg.AdminName, email, appCfg.AdminPassword)
	if err != nil {
		logger.Error("admin bootstrap failed", zap.String("email", email), zap.Error(err))
		return err
	}

	if created {
		logger.Info("created initial admin account", zap.String("email", email))
	}
	return nil
}
