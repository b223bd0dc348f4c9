// Package toolchain drives the external rust-gpu shader compiler.
//
// The compiler is cargo running with rustc_codegen_spirv as its codegen
// backend. Cargo builds a Plan from a descriptor: the command line, the
// encoded rustflags and the child environment. It then runs cargo once,
// reads cargo's JSON message stream and decodes the module metadata file
// the backend writes next to the .spv artifact.
//
// The toolchain's environment (library search path, toolchain pin) is an
// explicit Environment value applied to the child process only. This
// package never calls os.Setenv.
//
// Diagnostics (cargo's stderr and any non-JSON stdout lines) are streamed
// to a caller-provided writer while the build runs.
package toolchain
