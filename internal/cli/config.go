package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	build := &BuildFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective build configuration",
		Long: `Print the configuration a build would use: built-in defaults,
overridden by the config file, overridden by any build flags given here.

Accepts the same build flags as spvbuild itself.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runConfig(rootOpts, build, cmd)
		},
	}

	addBuildFlags(cmd.Flags(), build)

	return cmd
}

func runConfig(opts *RootOptions, build *BuildFlags, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	settings, path, err := loadSettings(cmd.Flags(), opts.Config, build)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	if _, err := settings.Policy(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
	}
	if path != "" {
		formatter.VerboseLog("config file: %s", path)
	}

	if formatter.Format == "json" {
		return formatter.Success(settings)
	}

	data, err := settings.YAML()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
	}
	_, err = formatter.Writer.Write(data)
	return err
}
