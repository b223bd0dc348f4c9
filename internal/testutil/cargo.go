package testutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeCargo describes the behavior of a stand-in cargo executable.
type FakeCargo struct {
	// Stdout lines are printed verbatim, typically cargo JSON messages.
	Stdout []string

	// Stderr is written to standard error before exiting.
	Stderr string

	// ExitCode is the process exit status.
	ExitCode int
}

// FakeCargoRun gives access to what the stand-in cargo observed.
type FakeCargoRun struct {
	// Path is the executable to pass as the cargo command.
	Path string

	dir string
}

// WriteFakeCargo writes a POSIX shell script that records its arguments,
// environment and working directory into dir and then behaves as fc says.
// Tests using it are skipped on Windows.
func WriteFakeCargo(t *testing.T, dir string, fc FakeCargo) *FakeCargoRun {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a POSIX shell script")
	}

	run := &FakeCargoRun{Path: filepath.Join(dir, "cargo"), dir: dir}

	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&sb, "printf '%%s\\n' \"$@\" > %s\n", shellQuote(run.file("args")))
	fmt.Fprintf(&sb, "env > %s\n", shellQuote(run.file("env")))
	fmt.Fprintf(&sb, "pwd -P > %s\n", shellQuote(run.file("pwd")))
	if len(fc.Stdout) > 0 {
		sb.WriteString("cat <<'SPVBUILD_STDOUT'\n")
		for _, line := range fc.Stdout {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("SPVBUILD_STDOUT\n")
	}
	if fc.Stderr != "" {
		sb.WriteString("cat >&2 <<'SPVBUILD_STDERR'\n")
		sb.WriteString(strings.TrimSuffix(fc.Stderr, "\n"))
		sb.WriteString("\nSPVBUILD_STDERR\n")
	}
	fmt.Fprintf(&sb, "exit %d\n", fc.ExitCode)

	if err := os.WriteFile(run.Path, []byte(sb.String()), 0o755); err != nil {
		t.Fatalf("write fake cargo: %v", err)
	}
	return run
}

// Args returns the arguments of the last invocation, one per element.
func (r *FakeCargoRun) Args(t *testing.T) []string {
	t.Helper()
	return r.lines(t, "args")
}

// Env returns the environment of the last invocation.
func (r *FakeCargoRun) Env(t *testing.T) map[string]string {
	t.Helper()
	env := make(map[string]string)
	for _, line := range r.lines(t, "env") {
		if k, v, ok := strings.Cut(line, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Dir returns the physical working directory of the last invocation.
func (r *FakeCargoRun) Dir(t *testing.T) string {
	t.Helper()
	lines := r.lines(t, "pwd")
	if len(lines) == 0 {
		t.Fatalf("fake cargo recorded no working directory")
	}
	return lines[0]
}

// Invoked reports whether the script ran at least once.
func (r *FakeCargoRun) Invoked() bool {
	_, err := os.Stat(r.file("args"))
	return err == nil
}

func (r *FakeCargoRun) file(name string) string {
	return filepath.Join(r.dir, "fake-cargo."+name)
}

func (r *FakeCargoRun) lines(t *testing.T, name string) []string {
	t.Helper()
	f, err := os.Open(r.file(name))
	if err != nil {
		t.Fatalf("fake cargo %s: %v", name, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("fake cargo %s: %v", name, err)
	}
	return lines
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
