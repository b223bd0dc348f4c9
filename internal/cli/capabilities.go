package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/spvbuild/internal/spirv"
)

// CapabilitiesOptions holds flags for the capabilities command.
type CapabilitiesOptions struct {
	*RootOptions
	Aliases bool
}

// CapabilitiesResult is the JSON payload of the capabilities command.
type CapabilitiesResult struct {
	Capabilities []string          `json:"capabilities"`
	Aliases      map[string]string `json:"aliases,omitempty"`
}

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CapabilitiesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "List the SPIR-V capability names --capability accepts",
		Long: `List the SPIR-V capability names accepted by --capability, in
enumerant order. Names are case-sensitive.

With --aliases, also list the alternative spellings that resolve to a
canonical name.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapabilities(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Aliases, "aliases", false, "also list alias spellings")

	return cmd
}

func runCapabilities(opts *CapabilitiesOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := CapabilitiesResult{Capabilities: spirv.CapabilityNames()}
	if opts.Aliases {
		result.Aliases = spirv.CapabilityAliases()
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, name := range result.Capabilities {
		fmt.Fprintln(formatter.Writer, name)
	}
	if opts.Aliases {
		aliases := make([]string, 0, len(result.Aliases))
		for alias := range result.Aliases {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, "Aliases:")
		for _, alias := range aliases {
			fmt.Fprintf(formatter.Writer, "  %s -> %s\n", alias, result.Aliases[alias])
		}
	}
	return nil
}
