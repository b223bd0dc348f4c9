// Package testutil provides deterministic fixtures shared by spvbuild tests:
// fixed build IDs, a stepping clock, hand-assembled SPIR-V modules and a
// stand-in cargo executable.
//
// testutil imports no other spvbuild package so any package's tests can use
// it without import cycles.
package testutil
