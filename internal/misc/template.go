package misc

import (
	"fmt"
	"os"
	"path/filepath"
)

// CopyConfigTemplate copies the example configuration file to the target path,
// creating parent directories as needed. The target must not already exist.
func CopyConfigTemplate(srcPath, dstPath string) error {
	if _, err := os.Stat(dstPath); err == nil {
		return fmt.Errorf("config file already exists: %s", dstPath)
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err = os.WriteFile(dstPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
