package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/spvbuild/internal/config"
	"github.com/roach88/spvbuild/internal/driver"
	"github.com/roach88/spvbuild/internal/store"
	"github.com/roach88/spvbuild/internal/toolchain"
)

func runBuild(opts *RootOptions, flags *BuildFlags, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	settings, cfgPath, err := loadSettings(cmd.Flags(), opts.Config, flags)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	policy, err := settings.Policy()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
	}

	d := &driver.Driver{
		Compiler: newCompiler(settings, cmd.ErrOrStderr(), logger),
		Logger:   logger,
	}

	if settings.History != "" {
		history, err := store.Open(settings.History)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
		}
		defer history.Close()
		d.History = history
	}

	report, err := d.Run(cmd.Context(), driver.Request{
		Config:    settings.Invocation(),
		Toolchain: settings.Toolchain,
		Policy:    policy,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, errorCode(err), err)
	}

	if formatter.Format == "json" {
		return formatter.encode(CLIResponse{Status: "ok", Data: report, BuildID: report.ID})
	}
	writeReport(formatter.Writer, report)
	return nil
}

// newCompiler builds the cargo compiler for settings. Cargo's diagnostics
// go to diag as they are produced.
func newCompiler(s config.Settings, diag io.Writer, logger *slog.Logger) *toolchain.Cargo {
	env := toolchain.NewEnvironment(s.CargoHome, s.Toolchain)
	logger.Debug("toolchain environment",
		"cargo_home", env.CargoHome,
		"library_path", env.LibraryPath,
		"toolchain", env.Toolchain,
	)
	return &toolchain.Cargo{
		Path:        s.Cargo,
		Env:         env,
		Backend:     s.CodegenBackend,
		Diagnostics: diag,
		Logger:      logger,
	}
}

func writeReport(w io.Writer, r *driver.Report) {
	if r.Artifact != "" {
		fmt.Fprintf(w, "Built %s\n", r.Artifact)
	} else {
		fmt.Fprintf(w, "Built %d module(s):\n", len(r.Artifacts))
		for _, a := range r.Artifacts {
			fmt.Fprintf(w, "  %s\n", a)
		}
	}
	if r.Destination != "" {
		fmt.Fprintf(w, "Copied to %s\n", r.Destination)
	}
	if r.SHA256 != "" {
		fmt.Fprintf(w, "  %d bytes, sha256 %s\n", r.Size, r.SHA256)
	}
	if r.Module != nil {
		fmt.Fprintf(w, "  SPIR-V %s, %d capability(s), %d entry point(s)\n",
			r.Module.Version(), len(r.Module.Capabilities), len(r.Module.EntryPoints))
		for _, ep := range r.Module.EntryPoints {
			fmt.Fprintf(w, "    %s %s\n", ep.Model, ep.Name)
		}
	}
	if len(r.Dropped) > 0 {
		fmt.Fprintf(w, "  dropped capabilities: %v\n", r.Dropped)
	}
	if r.Unchanged {
		fmt.Fprintln(w, "  unchanged since the last build of this configuration")
	}
}
