package platforms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crytic/cheatsheet/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vyperContractJSON is the per-source output of `vyper -f combined_json` for a contract with a single setter.
const vyperContractJSON = `{
  "bytecode": "0x6100b761000f6000396100b76000f3",
  "bytecode_runtime": "0x600436101561000d57",
  "abi": [{"name": "set", "outputs": [], "inputs": [{"type": "uint256", "name": "val"}], "constant": false, "payable": false, "type": "function", "gas": 35238}]
}`

// TestVyperCompileSource verifies source text is written to main.vy and the output is normalized.
func TestVyperCompileSource(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "vyper", testutils.FakeCompiler{
		VersionOutput: "0.1.0b13+commit.bb12a4a",
		Stdout:        `{"main.vy": ` + vyperContractJSON + `, "version": "0.1.0b13+commit.bb12a4a"}`,
	})
	vyper := &VyperCompilationConfig{Binary: fake.Path}

	compilation, err := vyper.CompileSource("x: uint256\n")
	require.NoError(t, err)

	assert.Equal(t, "vyper", compilation.Platform)
	assert.Equal(t, "0.1.0b13+commit.bb12a4a", compilation.CompilerVersion)
	assert.Equal(t, []string{"main.vy"}, compilation.Keys())

	contract, ok := compilation.Contract(vyper.QualifiedContractKey("main"))
	require.True(t, ok)
	assert.Equal(t, "6100b761000f6000396100b76000f3", contract.Bin)
	assert.Equal(t, "600436101561000d57", contract.BinRuntime)
	assert.Contains(t, contract.Abi.Methods, "set")

	assert.Equal(t, []string{"-f", "combined_json", "main.vy"}, fake.LastArgs(t))
}

// TestVyperCompileFiles verifies files are compiled as a batch and keys are mapped back to the provided paths.
func TestVyperCompileFiles(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "vyper", testutils.FakeCompiler{
		VersionOutput: "0.1.0b13",
		Stdout:        `{"0/token.vy": ` + vyperContractJSON + `, "1/token.vy": ` + vyperContractJSON + `}`,
	})
	vyper := &VyperCompilationConfig{Binary: fake.Path, Args: []string{"--evm-version", "byzantium"}}

	dir := t.TempDir()
	first := filepath.Join(dir, "a", "token.vy")
	second := filepath.Join(dir, "b", "token.vy")
	for _, path := range []string{first, second} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x: uint256\n"), 0644))
	}

	compilation, err := vyper.CompileFiles([]string{first, second})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, compilation.Keys())

	args := fake.LastArgs(t)
	assert.Equal(t, []string{"--evm-version", "byzantium", "-f", "combined_json"}, args[:4])
	assert.Equal(t, []string{filepath.Join("0", "token.vy"), filepath.Join("1", "token.vy")}, args[4:])
}

// TestVyperCompileMissingFile verifies unreadable inputs fail before the compiler runs.
func TestVyperCompileMissingFile(t *testing.T) {
	vyper := NewVyperCompilationConfig()
	_, err := vyper.CompileFiles([]string{filepath.Join(t.TempDir(), "missing.vy")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestVyperCompilerError verifies compiler diagnostics are preserved.
func TestVyperCompilerError(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "vyper", testutils.FakeCompiler{
		VersionOutput: "0.1.0b13",
		Stderr:        "vyper.exceptions.StructureException: line 1: Invalid top-level statement\n",
		ExitCode:      1,
	})
	vyper := &VyperCompilationConfig{Binary: fake.Path}

	_, err := vyper.CompileSource("foo(")
	var compilerErr *CompilerError
	require.ErrorAs(t, err, &compilerErr)
	assert.Contains(t, compilerErr.Output, "StructureException")
}

// TestVyperMalformedOutput verifies unexpected output is reported as a parse error.
func TestVyperMalformedOutput(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "vyper", testutils.FakeCompiler{
		VersionOutput: "0.1.0b13",
		Stdout:        "not json",
	})
	vyper := &VyperCompilationConfig{Binary: fake.Path}

	_, err := vyper.CompileSource("x: uint256\n")
	assert.ErrorContains(t, err, "could not parse vyper combined json output")
}

// TestSimpleVyperCompilation compiles a real contract when vyper is installed.
func TestSimpleVyperCompilation(t *testing.T) {
	testutils.RequireCompiler(t, "vyper")

	vyper := NewVyperCompilationConfig()
	compilation, err := vyper.CompileSource("x: public(uint256)\n")
	require.NoError(t, err)

	_, ok := compilation.Contract(vyper.QualifiedContractKey("main"))
	assert.True(t, ok)
}
