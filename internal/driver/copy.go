package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDestinationNotDir is returned when the destination is missing or is
// not a directory. Destinations are never created.
var ErrDestinationNotDir = errors.New("destination is not an existing directory")

// copyArtifact writes data to destDir/<base name of src> and returns the
// written path. A partially written file is left in place on error.
func copyArtifact(src string, data []byte, destDir string) (string, error) {
	info, err := os.Stat(destDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDestinationNotDir, destDir)
		}
		return "", fmt.Errorf("stat destination: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDestinationNotDir, destDir)
	}

	out := filepath.Join(destDir, filepath.Base(src))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return out, nil
}
