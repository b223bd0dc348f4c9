package cli

import (
	"errors"

	"github.com/roach88/spvbuild/internal/config"
	"github.com/roach88/spvbuild/internal/driver"
	"github.com/roach88/spvbuild/internal/spirv"
	"github.com/roach88/spvbuild/internal/toolchain"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeConfig      = "E002" // Config file invalid or unreadable
	ErrCodeInvalidFlag = "E003" // Flag value rejected
	ErrCodeNotFound    = "E005" // Path or record not found
	ErrCodeWriteFailed = "E007" // File write error

	// Build errors
	ErrCodeCapability  = "E101" // Unknown capability under the fail policy
	ErrCodeBackend     = "E102" // Codegen backend not found
	ErrCodeBuildFailed = "E103" // Cargo exited non-zero
	ErrCodeNoArtifact  = "E104" // No usable artifact reported
	ErrCodeMultiModule = "E105" // Multi-module build with a destination
	ErrCodeDestination = "E106" // Destination missing or not a directory

	// History errors
	ErrCodeHistory = "E110" // History database unusable
)

// errorCode maps an error to its CLI error code.
func errorCode(err error) string {
	var cfgErr *config.Error
	switch {
	case errors.As(err, &cfgErr):
		return ErrCodeConfig
	case errors.Is(err, spirv.ErrUnknownCapability):
		return ErrCodeCapability
	case errors.Is(err, toolchain.ErrBackendNotFound):
		return ErrCodeBackend
	case errors.Is(err, toolchain.ErrBuildFailed):
		return ErrCodeBuildFailed
	case errors.Is(err, toolchain.ErrNoArtifact):
		return ErrCodeNoArtifact
	case errors.Is(err, toolchain.ErrMultiModule):
		return ErrCodeMultiModule
	case errors.Is(err, driver.ErrDestinationNotDir):
		return ErrCodeDestination
	default:
		return ErrCodeGeneric
	}
}
