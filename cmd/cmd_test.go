package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/config"
	"github.com/crytic/cheatsheet/snippet"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCommand returns a fresh command carrying the flags added by addFlags, so tests never share flag state.
func newTestCommand(addFlags func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{}
	addFlags(cmd)
	return cmd
}

// checkFlags adds the flags of the check command to a test command.
func checkFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", ConfigFlagDescription)
	cmd.Flags().StringSlice("language", []string{}, "")
	cmd.Flags().Bool("fail-fast", false, "")
	cmd.Flags().Bool("skip-versions", false, "")
	cmd.Flags().String("cache-dir", "", "")
	addCompilerFlags(cmd)
}

// initFlags adds the flags of the init command to a test command.
func initFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "")
	cmd.Flags().Bool("force", false, "")
	addCompilerFlags(cmd)
}

// TestRenderCommand verifies the page is printed to the command output.
func TestRenderCommand(t *testing.T) {
	cmd := newTestCommand(func(cmd *cobra.Command) {
		cmd.Flags().String("out", "", OutFlagDescription)
	})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmdRunRender(cmd, []string{}))
	assert.True(t, strings.HasPrefix(out.String(), "<html>"))
	assert.Contains(t, out.String(), "<h2>Setup and basic syntax</h2>")

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, cmd.Flags().Set("out", path))
	require.NoError(t, cmdRunRender(cmd, []string{}))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(written))
}

// TestInitCommand verifies the default config is written with compiler overrides and never silently overwritten.
func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultProjectConfigFilename)
	cmd := newTestCommand(initFlags)
	require.NoError(t, cmd.Flags().Set("out", path))
	require.NoError(t, cmd.Flags().Set("solc", "/opt/solc-0.5.12"))

	require.NoError(t, cmdRunInit(cmd, []string{}))
	projectConfig, err := config.ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	platform, err := projectConfig.Compilation.Solidity.GetPlatform()
	require.NoError(t, err)
	assert.Equal(t, "/opt/solc-0.5.12", platform.(*platforms.SolcCompilationConfig).Binary)

	assert.Error(t, cmdRunInit(cmd, []string{}))
	require.NoError(t, cmd.Flags().Set("force", "true"))
	assert.NoError(t, cmdRunInit(cmd, []string{}))
}

// TestLoadProjectConfig verifies configs are read from the --config flag and that a missing flagged file is an error.
func TestLoadProjectConfig(t *testing.T) {
	projectConfig, err := config.GetDefaultProjectConfig()
	require.NoError(t, err)
	projectConfig.Compilation.CacheDirectory = "artifacts"
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, projectConfig.WriteToFile(path))

	cmd := newTestCommand(checkFlags)
	require.NoError(t, cmd.Flags().Set("config", path))
	loaded, err := loadProjectConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "artifacts", loaded.Compilation.CacheDirectory)

	cmd = newTestCommand(checkFlags)
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.json")))
	_, err = loadProjectConfig(cmd)
	assert.Error(t, err)
}

// TestCheckFlags verifies the check flags update the project config and the verification options.
func TestCheckFlags(t *testing.T) {
	projectConfig, err := config.GetDefaultProjectConfig()
	require.NoError(t, err)

	cmd := newTestCommand(checkFlags)
	require.NoError(t, cmd.Flags().Set("cache-dir", "artifacts"))
	require.NoError(t, cmd.Flags().Set("vyper", "/opt/vyper"))
	require.NoError(t, cmd.Flags().Set("language", "vy"))
	require.NoError(t, cmd.Flags().Set("fail-fast", "true"))

	require.NoError(t, updateProjectConfigWithCheckFlags(cmd, projectConfig))
	assert.Equal(t, "artifacts", projectConfig.Compilation.CacheDirectory)
	platform, err := projectConfig.Compilation.Vyper.GetPlatform()
	require.NoError(t, err)
	assert.Equal(t, "/opt/vyper", platform.(*platforms.VyperCompilationConfig).Binary)

	opts, err := verifyOptionsFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, []snippet.Language{snippet.Vyper}, opts.Languages)
	assert.True(t, opts.FailFast)
	assert.False(t, opts.SkipVersions)

	require.NoError(t, cmd.Flags().Set("language", "fe"))
	_, err = verifyOptionsFromFlags(cmd)
	assert.ErrorIs(t, err, snippet.ErrUnsupportedLanguage)
}
