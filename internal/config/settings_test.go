package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spvbuild/internal/invocation"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, invocation.DefaultSource, s.Source)
	assert.Equal(t, invocation.DefaultTarget, s.Target)
	assert.Equal(t, invocation.ToolchainVersion, s.Toolchain)
	assert.Equal(t, "cargo", s.Cargo)
	assert.Empty(t, s.Destination)
	assert.Empty(t, s.History)

	policy, err := s.Policy()
	require.NoError(t, err)
	assert.Equal(t, invocation.CapabilityDrop, policy)
}

func TestSettings_MergeFileOverDefaults(t *testing.T) {
	debug := true
	s := Defaults().Merge(&File{
		Source:            "shaders/sky",
		Destination:       "assets",
		Target:            "spirv-unknown-vulkan1.2",
		Capabilities:      []string{"Int8"},
		UnknownCapability: "fail",
		Debug:             &debug,
		History:           "history.db",
	})

	assert.Equal(t, "shaders/sky", s.Source)
	assert.Equal(t, "assets", s.Destination)
	assert.Equal(t, "spirv-unknown-vulkan1.2", s.Target)
	assert.Equal(t, []string{"Int8"}, s.Capabilities)
	assert.True(t, s.Debug)
	assert.Equal(t, "history.db", s.History)
	assert.Equal(t, invocation.ToolchainVersion, s.Toolchain, "unset fields keep defaults")
	assert.Equal(t, "cargo", s.Cargo)

	policy, err := s.Policy()
	require.NoError(t, err)
	assert.Equal(t, invocation.CapabilityFail, policy)
}

func TestSettings_MergeReplacesLists(t *testing.T) {
	base := Defaults()
	base.Capabilities = []string{"Int64", "Int16"}

	s := base.Merge(&File{Capabilities: []string{"Int8"}})
	assert.Equal(t, []string{"Int8"}, s.Capabilities)
	assert.Equal(t, []string{"Int64", "Int16"}, base.Capabilities, "receiver must not change")
}

func TestSettings_MergeNil(t *testing.T) {
	assert.Equal(t, Defaults(), Defaults().Merge(nil))
}

func TestSettings_Invocation(t *testing.T) {
	s := Defaults()
	s.Source = "shaders/sky"
	s.Destination = "assets"
	s.Extensions = []string{"SPV_KHR_ray_query"}
	s.Capabilities = []string{"RayQueryKHR"}
	s.Debug = true

	cfg := s.Invocation()
	assert.Equal(t, invocation.Config{
		Source:       "shaders/sky",
		Destination:  "assets",
		Target:       invocation.DefaultTarget,
		Extensions:   []string{"SPV_KHR_ray_query"},
		Capabilities: []string{"RayQueryKHR"},
		Debug:        true,
	}, cfg)

	cfg.Capabilities[0] = "changed"
	assert.Equal(t, "RayQueryKHR", s.Capabilities[0])
}

func TestSettings_PolicyInvalid(t *testing.T) {
	s := Defaults()
	s.UnknownCapability = "ignore"
	_, err := s.Policy()
	require.Error(t, err)
}

func TestSettings_YAML(t *testing.T) {
	s := Defaults()
	s.Capabilities = []string{"Int8"}

	data, err := s.YAML()
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "target: spirv-unknown-vulkan1.4\n")
	assert.Contains(t, out, "toolchain: "+invocation.ToolchainVersion+"\n")
	assert.Contains(t, out, "unknown_capability: drop\n")
	assert.Contains(t, out, "- Int8\n")
	assert.NotContains(t, out, "history")
	assert.NotContains(t, out, "destination")
}

func TestSettings_YAMLParsesBack(t *testing.T) {
	debug := true
	tests := []struct {
		name string
		s    Settings
	}{
		{name: "defaults", s: Defaults()},
		{name: "everything set", s: Defaults().Merge(&File{
			Source:            "shaders/sky",
			Destination:       "assets",
			Extensions:        []string{"SPV_KHR_shader_clock"},
			Capabilities:      []string{"Int8"},
			UnknownCapability: "warn",
			Debug:             &debug,
			CargoHome:         "/opt/cargo",
			CodegenBackend:    "/opt/cargo/lib/librustc_codegen_spirv.so",
			History:           ".spvbuild/history.db",
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.s.YAML()
			require.NoError(t, err)

			f, err := Parse(DefaultFile, data)
			require.NoError(t, err)
			assert.Equal(t, tt.s, Defaults().Merge(f))
		})
	}
}
