package compilation

import (
	"encoding/json"
	"testing"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSupportedCompilationPlatforms verifies the registered platforms.
func TestSupportedCompilationPlatforms(t *testing.T) {
	assert.Equal(t, []string{"solc", "vyper"}, GetSupportedCompilationPlatforms())
	assert.True(t, IsSupportedCompilationPlatform("vyper"))
	assert.False(t, IsSupportedCompilationPlatform("truffle"))
	assert.Nil(t, GetDefaultPlatformConfig("truffle"))
}

// TestCompilationConfigRoundTrip verifies platform options survive serialization of the generic config.
func TestCompilationConfigRoundTrip(t *testing.T) {
	config, err := NewCompilationConfigFromPlatform(&platforms.SolcCompilationConfig{
		Binary: "/opt/solc-0.5.12",
		Args:   []string{"--evm-version", "petersburg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "solc", config.Platform)

	b, err := json.Marshal(config)
	require.NoError(t, err)

	var decoded CompilationConfig
	require.NoError(t, json.Unmarshal(b, &decoded))
	platform, err := decoded.GetPlatform()
	require.NoError(t, err)

	solc, ok := platform.(*platforms.SolcCompilationConfig)
	require.True(t, ok)
	assert.Equal(t, "/opt/solc-0.5.12", solc.Binary)
	assert.Equal(t, []string{"--evm-version", "petersburg"}, solc.Args)
}

// TestCompilationConfigDefaults verifies missing platform options fall back to defaults and bad configs are rejected.
func TestCompilationConfigDefaults(t *testing.T) {
	config := CompilationConfig{Platform: "vyper"}
	platform, err := config.GetPlatform()
	require.NoError(t, err)
	assert.Equal(t, "vyper", platform.(*platforms.VyperCompilationConfig).Binary)

	_, err = NewCompilationConfig("brownie")
	assert.Error(t, err)

	malformed := json.RawMessage(`{"binary": 5}`)
	config = CompilationConfig{Platform: "solc", PlatformConfig: &malformed}
	assert.Error(t, config.Validate())
}
