package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// cargoHome is the cargo home directory fixed at build time:
//
//	go build -ldflags "-X github.com/roach88/spvbuild/internal/toolchain.cargoHome=$CARGO_HOME"
var cargoHome string

// Environment variables read or written for the child process.
const (
	EnvCargoHome        = "CARGO_HOME"
	EnvToolchain        = "RUSTUP_TOOLCHAIN"
	EnvRustflags        = "RUSTFLAGS"
	EnvEncodedRustflags = "CARGO_ENCODED_RUSTFLAGS"
)

// LibraryPathVar is the dynamic loader search path variable for this OS.
var LibraryPathVar = libraryPathVar(runtime.GOOS)

func libraryPathVar(goos string) string {
	switch goos {
	case "darwin":
		return "DYLD_FALLBACK_LIBRARY_PATH"
	case "windows":
		return "PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

// Environment is the toolchain configuration handed to the child process.
type Environment struct {
	// CargoHome is the cargo home directory.
	CargoHome string

	// LibraryPath lists directories prepended to LibraryPathVar and
	// searched for the codegen backend.
	LibraryPath []string

	// Toolchain pins RUSTUP_TOOLCHAIN when non-empty.
	Toolchain string
}

// DefaultCargoHome returns the link-time cargo home, then $CARGO_HOME, then
// ~/.cargo.
func DefaultCargoHome() string {
	if cargoHome != "" {
		return cargoHome
	}
	if v := os.Getenv(EnvCargoHome); v != "" {
		return v
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cargo")
	}
	return ".cargo"
}

// NewEnvironment builds the environment for a cargo home (DefaultCargoHome
// when empty) whose lib directory holds the codegen backend.
func NewEnvironment(home, toolchain string) Environment {
	if home == "" {
		home = DefaultCargoHome()
	}
	return Environment{
		CargoHome:   home,
		LibraryPath: []string{filepath.Join(home, "lib")},
		Toolchain:   toolchain,
	}
}

// Apply returns a copy of base with the library path prepended and the
// toolchain pinned. base is not modified.
func (e Environment) Apply(base []string) []string {
	env := append([]string(nil), base...)

	if len(e.LibraryPath) > 0 {
		dirs := append([]string(nil), e.LibraryPath...)
		if existing, ok := lookupEnv(env, LibraryPathVar); ok && existing != "" {
			dirs = append(dirs, existing)
		}
		env = setEnv(env, LibraryPathVar, strings.Join(dirs, string(os.PathListSeparator)))
	}
	if e.Toolchain != "" {
		env = setEnv(env, EnvToolchain, e.Toolchain)
	}
	return env
}

// SearchPath returns the directories searched for the codegen backend: the
// explicit library path first, then whatever base already lists.
func (e Environment) SearchPath(base []string) []string {
	dirs := append([]string(nil), e.LibraryPath...)
	if existing, ok := lookupEnv(base, LibraryPathVar); ok {
		dirs = append(dirs, filepath.SplitList(existing)...)
	}
	return dirs
}

func envKeyEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func lookupEnv(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		if k, v, ok := strings.Cut(env[i], "="); ok && envKeyEqual(k, key) {
			return v, true
		}
	}
	return "", false
}

func unsetEnv(env []string, key string) []string {
	out := env[:0:0]
	for _, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); ok && envKeyEqual(k, key) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

func setEnv(env []string, key, value string) []string {
	return append(unsetEnv(env, key), key+"="+value)
}
