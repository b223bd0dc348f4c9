// Package driver runs one build: it turns an invocation.Config into a
// descriptor, hands it to a toolchain.Compiler, copies the single artifact
// into the requested destination and summarizes what was produced.
//
// The driver performs exactly one compiler call per Run and never retries.
// It does not touch the process environment; toolchain environment is the
// compiler's concern.
package driver
