package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// DocumentPath returns the on-disk path of a bundled document.
func (c *Config) DocumentPath(name string) string {
	return filepath.Join(c.contentDir, name)
}

// setupAssets copies the bundled documents from assetsFS into the content
// directory. Existing files are kept so local edits survive upgrades.
func (c *Config) setupAssets(assetsFS fs.FS) error {
	c.log.Debug("Setting up content directory")

	// Create content directory if it doesn't exist
	if err := os.MkdirAll(c.contentDir, 0755); err != nil {
		c.log.Error("Failed to create content directory", err, "path", c.contentDir)
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	entries, err := fs.ReadDir(assetsFS, "assets")
	if err != nil {
		c.log.Error("Failed to read embedded assets", err)
		return fmt.Errorf("failed to read embedded assets: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		sourceFile := path.Join("assets", entry.Name())
		destFile := filepath.Join(c.contentDir, entry.Name())

		// Check if file already exists
		if _, err := os.Stat(destFile); err == nil {
			c.log.Debug("Content file exists, skipping", "file", destFile)
			continue
		}

		data, err := fs.ReadFile(assetsFS, sourceFile)
		if err != nil {
			c.log.Error("Failed to read embedded asset", err, "file", sourceFile)
			return fmt.Errorf("failed to read embedded asset %s: %w", sourceFile, err)
		}

		if err := os.WriteFile(destFile, data, 0644); err != nil {
			c.log.Error("Failed to write content file", err, "destination", destFile)
			return fmt.Errorf("failed to write content file %s: %w", destFile, err)
		}

		c.log.Debug("Copied content file", "source", sourceFile, "destination", destFile)
	}

	c.log.Info("Content setup completed", "content_dir", c.contentDir)
	return nil
}
