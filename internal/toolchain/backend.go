package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrBackendNotFound is returned when rustc_codegen_spirv is not on the
// library search path.
var ErrBackendNotFound = errors.New("codegen backend not found")

const backendName = "rustc_codegen_spirv"

// BackendFileName returns the platform file name of the codegen backend.
func BackendFileName(goos string) string {
	switch goos {
	case "windows":
		return backendName + ".dll"
	case "darwin":
		return "lib" + backendName + ".dylib"
	default:
		return "lib" + backendName + ".so"
	}
}

// FindBackend returns the first regular file named BackendFileName in dirs.
func FindBackend(dirs []string) (string, error) {
	name := BackendFileName(runtime.GOOS)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not in [%s]", ErrBackendNotFound, name, strings.Join(dirs, string(os.PathListSeparator)))
}
