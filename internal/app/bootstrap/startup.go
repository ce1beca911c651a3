// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	configureTimeouts(appCfg)
	c := timeouts.Current()
	logger.Info("collaborator timeouts",
		zap.Duration("ping", c.Ping),
		zap.Duration("short", c.Short),
		zap.Duration("medium", c.Medium),
		zap.Duration("batch", c.Batch),
		zap.Duration("extract", c.Extract))
	return nil
}

// configureTimeouts applies configured deadlines. CAMPANION_TIMEOUT_* read
// directly from the environment win over config values.
func configureTimeouts(appCfg AppConfig) {
	timeouts.Configure(timeouts.Config{
		Ping:    appCfg.TimeoutPing,
		Short:   appCfg.TimeoutShort,
		Medium:  appCfg.TimeoutMedium,
		Batch:   appCfg.TimeoutBatch,
		Extract: appCfg.TimeoutExtract,
	})
	timeouts.ConfigureFromEnv()
}
