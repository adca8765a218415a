package config

import (
	"os"
	"path/filepath"

	"peridot-shell/pkg/logger"
)

const (
	appDirName     = "peridot-shell"
	socketFileName = "peridot-shell.sock"
)

// DefaultConfig creates a default configuration rooted at configDir.
func DefaultConfig(configDir string, log *logger.Logger) *Config {
	log.Debug("Creating default configuration", "config_dir", configDir)

	config := &Config{
		socketPath:    DefaultSocketPath(),
		contentDir:    filepath.Join(configDir, "content"),
		sessionFile:   filepath.Join(configDir, "session.json"),
		notifyCommand: "",
		headless:      false,
		log:           log,
		configDir:     configDir,
	}

	log.Info("Created default configuration",
		"socket_path", config.socketPath,
		"content_dir", config.contentDir,
		"session_file", config.sessionFile)

	return config
}

// DefaultSocketPath prefers $XDG_RUNTIME_DIR and falls back to the temp dir.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketFileName)
	}
	return filepath.Join(os.TempDir(), socketFileName)
}

// applyDefaults fills every field the file left empty.
func (c *Config) applyDefaults() {
	if c.socketPath == "" {
		c.socketPath = DefaultSocketPath()
	}
	if c.contentDir == "" {
		c.contentDir = filepath.Join(c.configDir, "content")
	}
	if c.sessionFile == "" {
		c.sessionFile = filepath.Join(c.configDir, "session.json")
	}
}
