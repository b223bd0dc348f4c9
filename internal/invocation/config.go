package invocation

// Defaults for the flags of the build command.
const (
	DefaultSource = "."
	DefaultTarget = "spirv-unknown-vulkan1.4"
)

// Config is the validated set of options for one build.
type Config struct {
	// Source is the shader crate path, relative to the working directory
	// or absolute.
	Source string

	// Destination is the directory the artifact is copied into, relative
	// to the working directory. Empty means the artifact is not copied.
	Destination string

	// Target is the rust-gpu target triple, passed through unchanged.
	Target string

	// Extensions are SPIR-V extension names, forwarded in order.
	Extensions []string

	// Capabilities are SPIR-V capability names as the user spelled them.
	Capabilities []string

	// Debug selects the DebugPrintfThenExit panic strategy.
	Debug bool
}

// HasDestination reports whether the artifact should be copied.
func (c Config) HasDestination() bool {
	return c.Destination != ""
}
