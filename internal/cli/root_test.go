package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spvbuild/internal/invocation"
)

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "spvbuild", cmd.Use)
	assert.Equal(t, invocation.Version, cmd.Version)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"history", "capabilities", "config"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestBuildFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"source", "s", "."},
		{"destination", "d", ""},
		{"target", "t", "spirv-unknown-vulkan1.4"},
		{"extension", "e", "[]"},
		{"capability", "c", "[]"},
		{"debug", "", "false"},
		{"unknown-capability", "", "drop"},
		{"history", "", ""},
		{"codegen-backend", "", ""},
		{"cargo", "", "cargo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "spvbuild "+invocation.Version)
	assert.Contains(t, out, invocation.ToolchainVersion)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "capabilities", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.False(t, exitErr.Reported)
}

func TestUnknownFlagIsArgumentError(t *testing.T) {
	out, _, err := execute(t, "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.False(t, IsReported(err))
	assert.Contains(t, out, "Usage:")
}

func TestInvalidPolicyFlag(t *testing.T) {
	_, _, err := execute(t, "--unknown-capability", "ignore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore")
}

func TestPositionalArgsRejected(t *testing.T) {
	_, _, err := execute(t, "shaders")
	require.Error(t, err)
}
