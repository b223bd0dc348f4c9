package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/roach88/spvbuild/internal/config"
	"github.com/roach88/spvbuild/internal/invocation"
)

// BuildFlags are the options that shape a build. They are shared by the
// root command and `spvbuild config`.
type BuildFlags struct {
	Source         string
	Destination    string
	Target         string
	Extensions     []string
	Capabilities   []string
	Debug          bool
	Policy         invocation.CapabilityPolicy
	History        string
	CodegenBackend string
	Cargo          string
}

func addBuildFlags(fs *pflag.FlagSet, b *BuildFlags) {
	fs.StringVarP(&b.Source, "source", "s", invocation.DefaultSource, "path to the shader source crate")
	fs.StringVarP(&b.Destination, "destination", "d", "", "existing directory to copy the compiled artifact into")
	fs.StringVarP(&b.Target, "target", "t", invocation.DefaultTarget, "target triple passed to the compiler")
	fs.StringArrayVarP(&b.Extensions, "extension", "e", nil, "SPIR-V extension to enable (repeatable)")
	fs.StringArrayVarP(&b.Capabilities, "capability", "c", nil, "SPIR-V capability to enable (repeatable)")
	fs.BoolVar(&b.Debug, "debug", false, "print panic inputs and backtrace through debugPrintf")
	fs.Var(&b.Policy, "unknown-capability", "what to do with unknown capabilities (drop|warn|fail)")
	fs.StringVar(&b.History, "history", "", "record the build in this SQLite history database")
	fs.StringVar(&b.CodegenBackend, "codegen-backend", "", "path to rustc_codegen_spirv (default: search the cargo lib dir)")
	fs.StringVar(&b.Cargo, "cargo", "cargo", "cargo executable")
}

// loadSettings merges, in increasing precedence, the built-in defaults,
// the config file and every flag the user set explicitly. It returns the
// config file path that was used, or "" when none was loaded.
func loadSettings(fs *pflag.FlagSet, configPath string, b *BuildFlags) (config.Settings, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("resolve working directory: %w", err)
	}
	file, path, err := config.Find(wd, configPath)
	if err != nil {
		return config.Settings{}, path, err
	}

	s := config.Defaults().Merge(file)
	if b == nil {
		return s, path, nil
	}

	if fs.Changed("source") {
		s.Source = b.Source
	}
	if fs.Changed("destination") {
		s.Destination = b.Destination
	}
	if fs.Changed("target") {
		s.Target = b.Target
	}
	if fs.Changed("extension") {
		s.Extensions = b.Extensions
	}
	if fs.Changed("capability") {
		s.Capabilities = b.Capabilities
	}
	if fs.Changed("debug") {
		s.Debug = b.Debug
	}
	if fs.Changed("unknown-capability") {
		s.UnknownCapability = b.Policy.String()
	}
	if fs.Changed("history") {
		s.History = b.History
	}
	if fs.Changed("codegen-backend") {
		s.CodegenBackend = b.CodegenBackend
	}
	if fs.Changed("cargo") {
		s.Cargo = b.Cargo
	}
	return s, path, nil
}
