package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/spvbuild/internal/invocation"
	"github.com/roach88/spvbuild/internal/spirv"
	"github.com/roach88/spvbuild/internal/store"
	"github.com/roach88/spvbuild/internal/toolchain"
)

// History is the build ledger the driver records into.
type History interface {
	WriteBuild(ctx context.Context, rec *store.BuildRecord) error
	LatestBuild(ctx context.Context, fingerprint string) (store.BuildRecord, error)
}

// Driver runs builds. Compiler is required; every other field has a
// default.
type Driver struct {
	Compiler toolchain.Compiler

	// Getwd resolves relative source and destination paths. Defaults to
	// os.Getwd.
	Getwd func() (string, error)

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// IDs defaults to UUIDv7Generator.
	IDs IDGenerator

	// Now defaults to time.Now.
	Now func() time.Time

	// History records every build when set.
	History History
}

// Request is one build.
type Request struct {
	Config invocation.Config

	// Toolchain overrides the pinned toolchain when non-empty.
	Toolchain string

	// Policy handles unparsable capability names.
	Policy invocation.CapabilityPolicy
}

// Report summarizes a finished build.
type Report struct {
	ID            string   `json:"id"`
	Fingerprint   string   `json:"fingerprint"`
	Source        string   `json:"source"`
	Target        string   `json:"target"`
	Toolchain     string   `json:"toolchain"`
	PanicStrategy string   `json:"panic_strategy"`
	Capabilities  []string `json:"capabilities"`
	Extensions    []string `json:"extensions"`
	Dropped       []string `json:"dropped_capabilities,omitempty"`
	EntryPoints   []string `json:"entry_points,omitempty"`

	// Artifacts lists every module the compiler produced.
	Artifacts []string `json:"artifacts"`

	// Artifact is the single module, empty for multi-module builds.
	Artifact string `json:"artifact,omitempty"`

	// Destination is the path the artifact was copied to.
	Destination string `json:"destination,omitempty"`

	Size   int64             `json:"size,omitempty"`
	SHA256 string            `json:"sha256,omitempty"`
	Module *spirv.ModuleInfo `json:"module,omitempty"`

	// Unchanged is set when history holds an earlier successful build of
	// the same descriptor with identical artifact bytes.
	Unchanged bool `json:"unchanged"`
}

// Run performs one build. The compiler is invoked exactly once unless the
// request is rejected before that point.
func (d *Driver) Run(ctx context.Context, req Request) (*Report, error) {
	if d.Compiler == nil {
		return nil, errors.New("driver: no compiler")
	}
	logger := d.logger()

	wd, err := d.getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	desc, res, err := invocation.NewDescriptor(req.Config, invocation.Options{
		WorkDir:   wd,
		Toolchain: req.Toolchain,
		Policy:    req.Policy,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Dropped) > 0 {
		level := slog.LevelDebug
		if req.Policy == invocation.CapabilityWarn {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "dropping unknown SPIR-V capabilities", "capabilities", res.Dropped)
	}

	fingerprint, err := invocation.Fingerprint(desc)
	if err != nil {
		return nil, fmt.Errorf("fingerprint descriptor: %w", err)
	}

	report := &Report{
		ID:            d.ids().Generate(),
		Fingerprint:   fingerprint,
		Source:        desc.SourcePath(),
		Target:        desc.Target(),
		Toolchain:     desc.Toolchain(),
		PanicStrategy: desc.PanicStrategy().String(),
		Capabilities:  desc.CapabilityNames(),
		Extensions:    desc.Extensions(),
		Dropped:       res.Dropped,
	}
	if report.Extensions == nil {
		report.Extensions = []string{}
	}
	logger.Debug("building",
		"id", report.ID,
		"source", report.Source,
		"target", report.Target,
		"panic_strategy", report.PanicStrategy,
	)

	if err := d.build(ctx, desc, req.Config, wd, report); err != nil {
		d.record(ctx, report, err)
		return nil, err
	}
	d.record(ctx, report, nil)
	return report, nil
}

// build runs the compiler and fills in the artifact half of report.
func (d *Driver) build(ctx context.Context, desc invocation.Descriptor, cfg invocation.Config, wd string, report *Report) error {
	result, err := d.Compiler.Build(ctx, desc)
	if err != nil {
		return fmt.Errorf("compile %s: %w", desc.SourcePath(), err)
	}
	report.EntryPoints = result.EntryPoints
	report.Artifacts = result.Artifacts()
	if report.Artifacts == nil {
		report.Artifacts = []string{}
	}

	artifact, err := result.SingleArtifact()
	switch {
	case errors.Is(err, toolchain.ErrMultiModule) && !cfg.HasDestination():
		d.logger().Debug("multi-module build, nothing to copy", "modules", len(report.Artifacts))
		return nil
	case err != nil:
		return fmt.Errorf("locate artifact: %w", err)
	}
	report.Artifact = artifact

	data, err := os.ReadFile(artifact)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	if cfg.HasDestination() {
		dest := cfg.Destination
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(wd, dest)
		}
		out, err := copyArtifact(artifact, data, dest)
		if err != nil {
			return err
		}
		report.Destination = out
		d.logger().Debug("copied artifact", "from", artifact, "to", out)
	}

	sum := sha256.Sum256(data)
	report.Size = int64(len(data))
	report.SHA256 = hex.EncodeToString(sum[:])

	info, err := spirv.Inspect(data)
	if err != nil {
		d.logger().Warn("artifact is not a readable SPIR-V module", "artifact", artifact, "error", err)
		return nil
	}
	report.Module = info
	return nil
}

// record appends the build to history. History failures are logged and do
// not fail the build.
func (d *Driver) record(ctx context.Context, report *Report, buildErr error) {
	if d.History == nil {
		return
	}
	logger := d.logger()

	if buildErr == nil && report.SHA256 != "" {
		prev, err := d.History.LatestBuild(ctx, report.Fingerprint)
		if err == nil && prev.SHA256 == report.SHA256 {
			report.Unchanged = true
		}
	}

	rec := &store.BuildRecord{
		ID:            report.ID,
		Fingerprint:   report.Fingerprint,
		Source:        report.Source,
		Target:        report.Target,
		Toolchain:     report.Toolchain,
		PanicStrategy: report.PanicStrategy,
		Capabilities:  report.Capabilities,
		Extensions:    report.Extensions,
		Destination:   report.Destination,
		Artifact:      report.Artifact,
		Size:          report.Size,
		SHA256:        report.SHA256,
		Status:        store.StatusOK,
		CreatedAt:     d.now(),
	}
	if buildErr != nil {
		rec.Status = store.StatusFailed
		rec.Error = buildErr.Error()
	}
	if err := d.History.WriteBuild(ctx, rec); err != nil {
		logger.Warn("failed to record build history", "id", report.ID, "error", err)
		return
	}
	logger.Debug("recorded build", "id", rec.ID, "seq", rec.Seq, "status", rec.Status)
}

func (d *Driver) getwd() (string, error) {
	if d.Getwd != nil {
		return d.Getwd()
	}
	return os.Getwd()
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Driver) ids() IDGenerator {
	if d.IDs != nil {
		return d.IDs
	}
	return UUIDv7Generator{}
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
