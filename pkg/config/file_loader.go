package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"peridot-shell/pkg/logger"
)

// fileConfig is the on-disk shape, shared by the JSON and YAML encodings.
type fileConfig struct {
	SocketPath    string `json:"socket_path"    yaml:"socket_path"`
	ContentDir    string `json:"content_dir"    yaml:"content_dir"`
	SessionFile   string `json:"session_file"   yaml:"session_file"`
	NotifyCommand string `json:"notify_command" yaml:"notify_command"`
	Headless      bool   `json:"headless"       yaml:"headless"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFromFile loads the configuration from a JSON or YAML file. Unknown keys
// are rejected.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileConfig
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; keep defaults then.
		if err := dec.Decode(&temp); err != nil && !errors.Is(err, io.EOF) {
			log.Error("Failed to parse config YAML", err)
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&temp); err != nil {
			log.Error("Failed to parse config JSON", err)
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	log.Debug("Config parsed successfully")

	// Assign to private fields
	c.socketPath = expandHome(temp.SocketPath)
	c.contentDir = expandHome(temp.ContentDir)
	c.sessionFile = expandHome(temp.SessionFile)
	c.notifyCommand = temp.NotifyCommand
	c.headless = temp.Headless
	if c.configDir == "" {
		c.configDir = filepath.Dir(path)
	}
	c.applyDefaults()

	return nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(fileConfig{
		SocketPath:    c.socketPath,
		ContentDir:    c.contentDir,
		SessionFile:   c.sessionFile,
		NotifyCommand: c.notifyCommand,
		Headless:      c.headless,
	}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, configDir string, log *logger.Logger) (*Config, error) {
	config := &Config{log: log, configDir: configDir}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}
