// Package toolchaintest provides an in-process toolchain.Compiler for tests
// of code that drives builds.
package toolchaintest

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/roach88/spvbuild/internal/invocation"
	"github.com/roach88/spvbuild/internal/toolchain"
)

// Compiler writes a canned artifact instead of running cargo.
type Compiler struct {
	// Dir is where artifacts are written. Defaults to the descriptor's
	// target/spirv-builder directory.
	Dir string

	// Name is the artifact file name. Defaults to "shader.spv".
	Name string

	// Artifact is the module content.
	Artifact []byte

	// EntryPoints are reported in the build result.
	EntryPoints []string

	// Multi, when non-empty, produces one module per listed entry point.
	Multi []string

	// Err is returned from every Build call when set.
	Err error

	mu    sync.Mutex
	calls []invocation.Descriptor
}

var _ toolchain.Compiler = (*Compiler)(nil)

// Build records d and writes the configured artifact(s).
func (c *Compiler) Build(ctx context.Context, d invocation.Descriptor) (*toolchain.BuildResult, error) {
	c.mu.Lock()
	c.calls = append(c.calls, d)
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Err != nil {
		return nil, c.Err
	}

	dir := c.Dir
	if dir == "" {
		dir = filepath.Join(d.SourcePath(), "target", "spirv-builder", d.Target(), "release")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	result := &toolchain.BuildResult{EntryPoints: c.EntryPoints}
	if len(c.Multi) > 0 {
		result.Module.Multi = make(map[string]string, len(c.Multi))
		for _, entry := range c.Multi {
			path := filepath.Join(dir, entry+".spv")
			if err := os.WriteFile(path, c.Artifact, 0o644); err != nil {
				return nil, err
			}
			result.Module.Multi[entry] = path
		}
		return result, nil
	}

	name := c.Name
	if name == "" {
		name = "shader.spv"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, c.Artifact, 0o644); err != nil {
		return nil, err
	}
	result.Module.Single = path
	return result, nil
}

// Calls returns the descriptors passed to Build, in call order.
func (c *Compiler) Calls() []invocation.Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]invocation.Descriptor(nil), c.calls...)
}
