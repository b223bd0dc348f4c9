// Package config loads the optional spvbuild.yaml defaults file.
//
// A file is validated against an embedded CUE schema before it is decoded,
// so type errors and unknown keys are reported with file:line:col
// positions. Settings is the merged option set; command-line flags are
// layered over it by the cli package.
//
// Example spvbuild.yaml:
//
//	target: spirv-unknown-vulkan1.2
//	capabilities: [Int8, StorageImageWriteWithoutFormat]
//	extensions: [SPV_KHR_shader_clock]
//	unknown_capability: warn
//	history: .spvbuild/history.db
package config
