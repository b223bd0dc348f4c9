package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/spvbuild/internal/invocation"
)

// rustflagsSeparator joins CARGO_ENCODED_RUSTFLAGS entries.
const rustflagsSeparator = "\x1f"

// waitDelay bounds how long Build waits for cargo's output after the
// context is done.
const waitDelay = 5 * time.Second

// Compiler builds a SPIR-V module from a descriptor.
type Compiler interface {
	Build(ctx context.Context, d invocation.Descriptor) (*BuildResult, error)
}

// Cargo runs cargo with rustc_codegen_spirv.
type Cargo struct {
	// Path is the cargo executable. Defaults to "cargo".
	Path string

	// Env is applied to the child process environment.
	Env Environment

	// Backend is the codegen backend path. Found on Env's search path when
	// empty.
	Backend string

	// Diagnostics receives cargo's stderr and non-JSON stdout lines.
	// Discarded when nil.
	Diagnostics io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Environ returns the base child environment. Defaults to os.Environ.
	Environ func() []string
}

var _ Compiler = (*Cargo)(nil)

// Plan is one fully resolved cargo invocation.
type Plan struct {
	Path      string
	Dir       string
	Args      []string
	RustFlags []string
	Env       []string
}

// Args returns the cargo command line for d, without the executable.
func Args(d invocation.Descriptor) []string {
	return []string{
		"+" + d.Toolchain(),
		"build",
		"--message-format=json-render-diagnostics",
		"-Zbuild-std=core",
		"-Zbuild-std-features=compiler-builtins-mem",
		"--profile", "release",
		"--target", d.Target(),
		"--target-dir", filepath.Join(d.SourcePath(), "target", "spirv-builder"),
	}
}

// RustFlags returns the rustc flags for d, in the order rustc receives them.
func RustFlags(d invocation.Descriptor, backend string) ([]string, error) {
	flags := []string{
		"-Zcodegen-backend=" + backend,
		"-Zbinary-dep-depinfo",
		"-Csymbol-mangling-version=v0",
		"-Zcrate-attr=feature(register_tool)",
		"-Zcrate-attr=register_tool(rust_gpu)",
		"-Coverflow-checks=off",
		"-Cdebug-assertions=off",
		"-Zinline-mir=off",
		"-Zmir-enable-passes=-GVN",
		"-Zshare-generics=off",
	}

	panicStrategy := d.PanicStrategy()
	var features []string
	if panicStrategy.RequiresNonSemanticInfo() {
		features = append(features, "+ext:SPV_KHR_non_semantic_info")
	}
	for _, name := range d.CapabilityNames() {
		features = append(features, "+"+name)
	}
	for _, ext := range d.Extensions() {
		if ext == "" || strings.Contains(ext, ",") {
			return nil, fmt.Errorf("invalid extension %q", ext)
		}
		features = append(features, "+ext:"+ext)
	}
	if len(features) > 0 {
		flags = append(flags, "-Ctarget-feature="+strings.Join(features, ","))
	}

	if s := panicStrategy.AbortStrategy(); s != "" {
		flags = append(flags, "-Cllvm-args=--abort-strategy="+s)
	}

	for _, f := range flags {
		if strings.Contains(f, rustflagsSeparator) {
			return nil, fmt.Errorf("rustflag %q contains the 0x1f separator", f)
		}
	}
	return flags, nil
}

// Plan resolves the codegen backend and builds the invocation for d.
func (c *Cargo) Plan(d invocation.Descriptor) (*Plan, error) {
	if d.IsZero() {
		return nil, errors.New("plan: empty descriptor")
	}
	base := c.environ()

	backend := c.Backend
	if backend == "" {
		found, err := FindBackend(c.Env.SearchPath(base))
		if err != nil {
			return nil, err
		}
		backend = found
	}

	flags, err := RustFlags(d, backend)
	if err != nil {
		return nil, err
	}

	env := c.Env.Apply(base)
	env = unsetEnv(env, EnvRustflags)
	env = setEnv(env, EnvEncodedRustflags, strings.Join(flags, rustflagsSeparator))

	path := c.Path
	if path == "" {
		path = "cargo"
	}
	return &Plan{
		Path:      path,
		Dir:       d.SourcePath(),
		Args:      Args(d),
		RustFlags: flags,
		Env:       env,
	}, nil
}

// Build runs cargo once and returns the decoded module metadata. When the
// backend reports a bare .spv without metadata, a single-module result
// naming it is returned.
func (c *Cargo) Build(ctx context.Context, d invocation.Descriptor) (*BuildResult, error) {
	plan, err := c.Plan(d)
	if err != nil {
		return nil, err
	}
	logger := c.logger()
	logger.Debug("running cargo",
		"path", plan.Path,
		"dir", plan.Dir,
		"args", plan.Args,
		"rustflags", plan.RustFlags,
	)

	cmd := exec.CommandContext(ctx, plan.Path, plan.Args...)
	cmd.Dir = plan.Dir
	cmd.Env = plan.Env
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("cargo stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("cargo stderr: %w", err)
	}
	cmd.WaitDelay = waitDelay
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start cargo: %w", err)
	}
	// Killing cargo does not close pipes inherited by its children.
	stop := context.AfterFunc(ctx, func() {
		stdout.Close()
		stderr.Close()
	})
	defer stop()

	diag := &syncWriter{w: c.diagnostics()}
	var filenames []string
	var g errgroup.Group
	g.Go(func() error {
		names, err := scanMessages(stdout, diag)
		filenames = names
		return err
	})
	g.Go(func() error {
		if _, err := io.Copy(diag, stderr); err != nil {
			return fmt.Errorf("read cargo stderr: %w", err)
		}
		return nil
	})
	streamErr := g.Wait()

	waitErr := cmd.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cargo: %w", err)
	}
	if err := waitErr; err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit status %d", ErrBuildFailed, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}
	if streamErr != nil {
		return nil, streamErr
	}

	metadata, module, err := artifactFiles(filenames, plan.Dir)
	if err != nil {
		return nil, err
	}
	if metadata == "" {
		logger.Debug("no module metadata, using artifact", "artifact", module)
		return &BuildResult{Module: ModuleResult{Single: module}}, nil
	}
	logger.Debug("reading module metadata", "path", metadata)
	return ReadBuildResult(metadata)
}

func (c *Cargo) environ() []string {
	if c.Environ != nil {
		return c.Environ()
	}
	return os.Environ()
}

func (c *Cargo) diagnostics() io.Writer {
	if c.Diagnostics != nil {
		return c.Diagnostics
	}
	return io.Discard
}

func (c *Cargo) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// syncWriter serializes writes from the stdout and stderr readers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
