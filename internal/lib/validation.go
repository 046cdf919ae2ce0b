package lib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chunksplit/chunksplit/internal/models"
)

// ValidateManifestPath checks that a manifest path exists, is a regular
// file, and looks like a manifest.
func ValidateManifestPath(path string) error {
	if path == "" {
		return fmt.Errorf("manifest path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound(path)
		}
		return fmt.Errorf("cannot access manifest '%s': %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("manifest path '%s' is a directory, not a file", path)
	}
	if !models.IsManifestFile(filepath.Base(path)) {
		return fmt.Errorf("manifest '%s' must have a .json extension", path)
	}

	return nil
}

// ValidatePayloadPath checks that a manifest unit's payload path, resolved
// relative to the manifest's own directory, does not escape it.
func ValidatePayloadPath(relPath string) error {
	if relPath == "" {
		return nil
	}
	if !models.IsSafePath(relPath) {
		return fmt.Errorf("unsafe payload path detected: %s", relPath)
	}
	return nil
}
