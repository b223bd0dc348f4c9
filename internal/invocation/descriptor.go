package invocation

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/spvbuild/internal/spirv"
)

// Options are the descriptor inputs that do not come from the user's
// build request.
type Options struct {
	// WorkDir is the directory relative sources are resolved against.
	WorkDir string

	// Toolchain overrides ToolchainVersion when non-empty.
	Toolchain string

	// Policy handles capability names that fail to parse.
	Policy CapabilityPolicy
}

// Resolution reports decisions NewDescriptor made while building a
// descriptor.
type Resolution struct {
	// Dropped lists capability names that did not parse, in input order.
	Dropped []string
}

// CapabilityError is returned under CapabilityFail when one or more
// capability names do not parse.
type CapabilityError struct {
	Names []string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("unknown SPIR-V capabilities: %s", strings.Join(e.Names, ", "))
}

func (e *CapabilityError) Unwrap() error {
	return spirv.ErrUnknownCapability
}

// Descriptor is the immutable request handed to the external compiler.
type Descriptor struct {
	sourcePath   string
	target       string
	toolchain    string
	panic        PanicStrategy
	extensions   []string
	capabilities []spirv.Capability
}

// NewDescriptor resolves cfg into a Descriptor.
//
// Relative sources are joined onto opts.WorkDir; absolute sources are kept.
// An empty target or toolchain falls back to the defaults. Capabilities
// are canonicalized and de-duplicated, keeping first-seen order.
func NewDescriptor(cfg Config, opts Options) (Descriptor, Resolution, error) {
	var res Resolution

	source := cfg.Source
	if source == "" {
		source = DefaultSource
	}
	if !filepath.IsAbs(source) {
		if opts.WorkDir == "" {
			return Descriptor{}, res, errors.New("resolve source: working directory is required for relative sources")
		}
		source = filepath.Join(opts.WorkDir, source)
	}

	target := cfg.Target
	if target == "" {
		target = DefaultTarget
	}

	toolchain := opts.Toolchain
	if toolchain == "" {
		toolchain = ToolchainVersion
	}

	var caps []spirv.Capability
	for _, name := range cfg.Capabilities {
		c, err := spirv.ParseCapability(name)
		if err != nil {
			res.Dropped = append(res.Dropped, name)
			continue
		}
		if !slices.Contains(caps, c) {
			caps = append(caps, c)
		}
	}
	if opts.Policy == CapabilityFail && len(res.Dropped) > 0 {
		return Descriptor{}, res, &CapabilityError{Names: slices.Clone(res.Dropped)}
	}

	return Descriptor{
		sourcePath:   filepath.Clean(source),
		target:       target,
		toolchain:    toolchain,
		panic:        PanicStrategyFor(cfg.Debug),
		extensions:   slices.Clone(cfg.Extensions),
		capabilities: caps,
	}, res, nil
}

// SourcePath is the absolute path of the shader crate.
func (d Descriptor) SourcePath() string { return d.sourcePath }

// Target is the target triple.
func (d Descriptor) Target() string { return d.target }

// Toolchain is the pinned rust toolchain.
func (d Descriptor) Toolchain() string { return d.toolchain }

// PanicStrategy is the panic-handling policy.
func (d Descriptor) PanicStrategy() PanicStrategy { return d.panic }

// Extensions returns a copy of the requested extensions.
func (d Descriptor) Extensions() []string { return slices.Clone(d.extensions) }

// Capabilities returns a copy of the parsed capabilities.
func (d Descriptor) Capabilities() []spirv.Capability { return slices.Clone(d.capabilities) }

// CapabilityNames returns the capabilities as canonical grammar names.
func (d Descriptor) CapabilityNames() []string {
	names := make([]string, len(d.capabilities))
	for i, c := range d.capabilities {
		names[i] = c.String()
	}
	return names
}

// IsZero reports whether d was never built by NewDescriptor.
func (d Descriptor) IsZero() bool {
	return d.sourcePath == ""
}
