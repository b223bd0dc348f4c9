package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spvbuild/internal/spirv"
)

func TestCapabilities_Text(t *testing.T) {
	out, _, err := execute(t, "capabilities")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, spirv.CapabilityNames(), lines)
	assert.NotContains(t, out, "Aliases:")
}

func TestCapabilities_Aliases(t *testing.T) {
	out, _, err := execute(t, "capabilities", "--aliases")
	require.NoError(t, err)
	assert.Contains(t, out, "Aliases:")
	for alias, canonical := range spirv.CapabilityAliases() {
		assert.Contains(t, out, "  "+alias+" -> "+canonical)
	}
}

func TestCapabilities_JSON(t *testing.T) {
	out, _, err := execute(t, "capabilities", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string             `json:"status"`
		Data   CapabilitiesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.Data.Capabilities, "Shader")
	assert.Contains(t, resp.Data.Capabilities, "Int8")
	assert.Nil(t, resp.Data.Aliases)
}
