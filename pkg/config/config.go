package config

import (
	"peridot-shell/pkg/logger"
)

// Config holds the application configuration.
type Config struct {
	// Configurable via file (private fields to enforce immutability)
	socketPath    string
	contentDir    string
	sessionFile   string
	notifyCommand string
	headless      bool

	// Internal fields
	log       *logger.Logger
	configDir string
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetSocketPath returns the command socket path.
func (c *Config) GetSocketPath() string {
	return c.socketPath
}

// GetContentDir returns the directory holding bundled documents.
func (c *Config) GetContentDir() string {
	return c.contentDir
}

// GetSessionFile returns the session record path.
func (c *Config) GetSessionFile() string {
	return c.sessionFile
}

// GetNotifyCommand returns the notify command.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// IsHeadless reports whether windows are kept in memory only.
func (c *Config) IsHeadless() bool {
	return c.headless
}

// SetHeadless overrides the headless flag, used by the --headless flag.
func (c *Config) SetHeadless(headless bool) {
	c.headless = headless
}

// GetConfigDir returns the directory the config was resolved against.
func (c *Config) GetConfigDir() string {
	return c.configDir
}
