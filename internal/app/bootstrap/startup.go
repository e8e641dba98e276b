// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/config"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// DraftHub applies TIMEOUT_* environment overrides to the handler timeout
// values, and makes sure the local upload directory exists when local
// storage is configured, so the first version upload does not fail on a
// missing directory.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts configured from environment", zap.Int("count", n))
	}

	if appCfg.StorageType == "local" {
		if err := os.MkdirAll(appCfg.StorageLocalPath, 0o755); err != nil {
			return fmt.Errorf("create upload directory %s: %w", appCfg.StorageLocalPath, err)
		}
		logger.Info("local upload directory ready", zap.String("path", appCfg.StorageLocalPath))
	}
	return nil
}
