package invocation

// ToolchainVersion is the rust-gpu nightly every descriptor is pinned to.
const ToolchainVersion = "nightly-2025-06-23"

// DescriptorVersion is the schema version mixed into fingerprints.
const DescriptorVersion = "1"

// Version is the spvbuild release, overridden at link time with
// -ldflags "-X github.com/roach88/spvbuild/internal/invocation.Version=...".
var Version = "0.1.0-dev"
