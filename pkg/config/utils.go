package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"peridot-shell/pkg/logger"
)

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, configDir string, log *logger.Logger) (*Config, error) {
	// Try provided path first if specified
	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, configDir, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config := DefaultConfig(configDir, log)
		if err := config.Save(defaultPath); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err := loadConfigFromPath(defaultPath, configDir, log)
	if err != nil {
		log.Warn("Falling back to default configuration", "path", defaultPath, "error", err.Error())
		return DefaultConfig(configDir, log), nil
	}
	return config, nil
}

// FindConfig locates and initializes the configuration, then installs the
// bundled documents found under assets/ in assetsFS.
func FindConfig(providedPath string, log *logger.Logger, assetsFS fs.FS) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	// Get user config directory
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}

	// Setup default paths
	defaultConfigDir := filepath.Join(homeConfigDir, appDirName)
	defaultConfigPath := filepath.Join(defaultConfigDir, "config.json")

	log.Debug("Configuration paths",
		"config_dir", defaultConfigDir,
		"config_path", defaultConfigPath)

	log.Debug("Ensuring directory exists", "path", defaultConfigDir)
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		log.Error("Failed to create directory", err, "path", defaultConfigDir)
		return nil, err
	}

	// Initialize config and load from appropriate source
	config, err := initializeConfig(providedPath, defaultConfigPath, defaultConfigDir, log)
	if err != nil {
		return nil, err
	}

	// Setup assets once after config is loaded
	if assetsFS != nil {
		if err := config.setupAssets(assetsFS); err != nil {
			return nil, err
		}
	}

	return config, nil
}
