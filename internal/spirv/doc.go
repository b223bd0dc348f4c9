// Package spirv holds the small slice of the SPIR-V binary format that
// spvbuild needs: the capability grammar used to validate --capability
// values, and a header/declaration reader used to summarize the artifact a
// build produced.
//
// Code generation and validation belong to the external toolchain; nothing
// here writes or rewrites modules.
package spirv
