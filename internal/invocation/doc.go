// Package invocation defines what one spvbuild run asks of the shader
// toolchain.
//
// A Config is the user's request as parsed from flags and the optional
// config file. NewDescriptor turns it into a Descriptor: the immutable,
// fully resolved value handed to exactly one compiler call. Descriptor has
// no setters; its slices are copied on the way in and on the way out.
//
// Key constraints:
//   - Exactly one Descriptor is built per process run
//   - Extensions are forwarded unconditionally, in order
//   - Capabilities are parsed against the SPIR-V grammar; unparsable names
//     are handled by an explicit CapabilityPolicy
//   - The panic strategy is always explicit: SilentExit unless --debug
//
// Fingerprint gives a Descriptor a stable content-addressed identity using
// canonical JSON and SHA-256 with domain separation.
package invocation
