package app

import (
	"context"

	"github.com/oshokin/http-observer/internal/config"
	"github.com/oshokin/http-observer/internal/logger"
)

// ExecuteConfigInitCommand writes a configuration file populated with defaults.
func ExecuteConfigInitCommand(ctx context.Context, configFilename string, overwrite bool) {
	if configFilename == "" {
		configFilename = config.DefaultConfigFilename
	}

	if err := config.SaveConfig(config.DefaultConfig(), configFilename, overwrite); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to %s", configFilename)
}
