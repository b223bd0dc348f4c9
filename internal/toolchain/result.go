package toolchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	// ErrMultiModule is returned by SingleArtifact when the build emitted one
	// module per entry point.
	ErrMultiModule = errors.New("build produced multiple modules")

	// ErrNoArtifact is returned when cargo reported no usable artifact.
	ErrNoArtifact = errors.New("build produced no artifact")

	// ErrBuildFailed wraps a non-zero cargo exit.
	ErrBuildFailed = errors.New("cargo build failed")
)

// ModuleResult is where the compiled module(s) landed. Exactly one of Single
// and Multi is set.
type ModuleResult struct {
	Single string
	Multi  map[string]string
}

// IsSingle reports whether the build emitted a single module.
func (m ModuleResult) IsSingle() bool {
	return m.Multi == nil
}

type moduleResultJSON struct {
	SingleModule *string           `json:"SingleModule,omitempty"`
	MultiModule  map[string]string `json:"MultiModule,omitempty"`
}

// UnmarshalJSON decodes {"SingleModule": path} or {"MultiModule": {entry: path}}.
func (m *ModuleResult) UnmarshalJSON(data []byte) error {
	var raw moduleResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.SingleModule != nil && raw.MultiModule == nil:
		*m = ModuleResult{Single: *raw.SingleModule}
	case raw.SingleModule == nil && raw.MultiModule != nil:
		*m = ModuleResult{Multi: raw.MultiModule}
	default:
		return fmt.Errorf("module result: expected exactly one of SingleModule or MultiModule")
	}
	return nil
}

// MarshalJSON encodes the same shape UnmarshalJSON reads.
func (m ModuleResult) MarshalJSON() ([]byte, error) {
	if m.IsSingle() {
		return json.Marshal(moduleResultJSON{SingleModule: &m.Single})
	}
	return json.Marshal(moduleResultJSON{MultiModule: m.Multi})
}

// BuildResult is the module metadata rustc_codegen_spirv writes beside the
// artifact.
type BuildResult struct {
	EntryPoints []string     `json:"entry_points"`
	Module      ModuleResult `json:"module"`
}

// SingleArtifact returns the path of the one module the build produced.
func (r *BuildResult) SingleArtifact() (string, error) {
	if !r.Module.IsSingle() {
		return "", fmt.Errorf("%w: %d modules", ErrMultiModule, len(r.Module.Multi))
	}
	if r.Module.Single == "" {
		return "", ErrNoArtifact
	}
	return r.Module.Single, nil
}

// Artifacts returns every module path, sorted by entry point for multi-module
// builds.
func (r *BuildResult) Artifacts() []string {
	if r.Module.IsSingle() {
		if r.Module.Single == "" {
			return nil
		}
		return []string{r.Module.Single}
	}
	names := make([]string, 0, len(r.Module.Multi))
	for name := range r.Module.Multi {
		names = append(names, name)
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = r.Module.Multi[name]
	}
	return paths
}

// ReadBuildResult decodes a module metadata file.
func ReadBuildResult(path string) (*BuildResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module metadata: %w", err)
	}
	var r BuildResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode module metadata %s: %w", path, err)
	}
	return &r, nil
}
