//go:build !js

package ui

import (
	"fmt"
	"os"
	"path/filepath"
)

// saveSnapshot writes PNG data to path. Overridden in tests.
var saveSnapshot = func(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
