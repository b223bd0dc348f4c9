package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestBuild creates a successful build record with minimal required fields.
func createTestBuild(id, fingerprint string) *BuildRecord {
	return &BuildRecord{
		ID:            id,
		Fingerprint:   fingerprint,
		Source:        "/work/shader",
		Target:        "spirv-unknown-vulkan1.4",
		Toolchain:     "nightly-2025-06-23",
		PanicStrategy: "silent-exit",
		Capabilities:  []string{"Int8"},
		Extensions:    []string{},
		Artifact:      "/work/shader/target/spirv-builder/shader.spv",
		Size:          1024,
		SHA256:        "ab12",
		Status:        StatusOK,
		CreatedAt:     testTime,
	}
}
