package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/spvbuild/internal/invocation"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // explicit config file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the spvbuild command. Running it without a
// subcommand builds the shader crate.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	build := &BuildFlags{}

	cmd := &cobra.Command{
		Use:   "spvbuild",
		Short: "Build a rust-gpu shader crate into a SPIR-V module",
		Long: `spvbuild compiles a rust-gpu shader crate with cargo and the
rustc_codegen_spirv backend, then optionally copies the single SPIR-V
artifact into a destination directory.

Defaults can be kept in spvbuild.yaml in the working directory. Flags
given on the command line override the file.

Examples:
  spvbuild --source shaders/sky --destination assets
  spvbuild -c Int8 -c StorageImageWriteWithoutFormat -e SPV_KHR_shader_clock
  spvbuild --debug --history .spvbuild/history.db`,
		Version:       invocation.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runBuild(opts, build, cmd)
		},
	}
	cmd.SetVersionTemplate("spvbuild {{.Version}} (toolchain " + invocation.ToolchainVersion + ")\n")

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default: spvbuild.yaml if present)")

	addBuildFlags(cmd.Flags(), build)

	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewCapabilitiesCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
