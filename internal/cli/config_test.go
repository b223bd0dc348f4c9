package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/spvbuild/internal/config"
)

func TestConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "config")
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, config.Defaults(), got)
}

func TestConfig_FileAndFlags(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	writeConfig(t, wd, `target: spirv-unknown-vulkan1.2
capabilities: [Int8]
unknown_capability: warn
debug: true
`)

	out, _, err := execute(t, "config", "--format", "json", "-c", "Int64", "-d", "assets")
	require.NoError(t, err)

	var resp struct {
		Data config.Settings `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "spirv-unknown-vulkan1.2", resp.Data.Target)
	assert.Equal(t, []string{"Int64"}, resp.Data.Capabilities)
	assert.Equal(t, "assets", resp.Data.Destination)
	assert.Equal(t, "warn", resp.Data.UnknownCapability)
	assert.True(t, resp.Data.Debug)
}

func TestConfig_ExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeConfig(t, dir, "cargo: /usr/local/bin/cargo\n")

	out, _, err := execute(t, "config", "--config", filepath.Join(dir, "spvbuild.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "cargo: /usr/local/bin/cargo")
}

func TestConfig_MissingExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())

	_, errOut, err := execute(t, "config", "--config", "nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
}

func TestConfig_InvalidFile(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	writeConfig(t, wd, "unknown_capability: ignore\n")

	_, errOut, err := execute(t, "config")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
	assert.Contains(t, errOut, "unknown_capability")
}
