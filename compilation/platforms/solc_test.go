package platforms

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solcVersionOutput = "solc, the solidity compiler commandline interface\nVersion: 0.8.19+commit.7dd6d404.Linux.g++"

// solcCombinedOutput is recorded `solc --combined-json` output for a unit holding a library and a contract.
const solcCombinedOutput = `{
  "contracts": {
    "<stdin>:Math": {
      "abi": [],
      "bin": "60566050600b82828239805160001a6073146043577f4e487b7100000000000000000000000000000000000000000000000000000000600052600060045260246000fd5b30600052607381538281f3fe",
      "bin-runtime": "730000000000000000000000000000000000000000301460806040526000"
    },
    "<stdin>:Store": {
      "abi": [{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},{"inputs":[{"name":"val","type":"uint256"}],"name":"set","outputs":[],"stateMutability":"nonpayable","type":"function"}],
      "bin": "6080604052348015600f57600080fd5b50603f80601d6000396000f3fe6080604052600080fdfea164736f6c6343000813000a",
      "bin-runtime": "6080604052600080fdfea164736f6c6343000813000a"
    }
  },
  "version": "0.8.19+commit.7dd6d404.Linux.g++"
}`

// TestSolcCompileSource verifies solc combined JSON output is normalized and that the source is passed on stdin.
func TestSolcCompileSource(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "solc", testutils.FakeCompiler{
		VersionOutput: solcVersionOutput,
		Stdout:        solcCombinedOutput,
	})
	solc := &SolcCompilationConfig{Binary: fake.Path, Args: []string{"--optimize"}}

	compilation, err := solc.CompileSource("contract Store {}")
	require.NoError(t, err)

	assert.Equal(t, "solc", compilation.Platform)
	assert.Equal(t, "0.8.19", compilation.CompilerVersion)
	assert.Equal(t, []string{"<stdin>:Math", "<stdin>:Store"}, compilation.Keys())

	store, ok := compilation.Contract(solc.QualifiedContractKey("Store"))
	require.True(t, ok)
	assert.Contains(t, store.Abi.Methods, "set")
	assert.NotContains(t, store.Bin, "0x")
	assert.Equal(t, "6080604052600080fdfea164736f6c6343000813000a", store.BinRuntime)

	math, ok := compilation.Contract("<stdin>:Math")
	require.True(t, ok)
	assert.Empty(t, math.Abi.Methods)

	// Extra arguments come first and the source is read from stdin
	assert.Equal(t, []string{"--optimize", "--combined-json", solc.SetSolcOutputOptions(mustVersion(t, "0.8.19")), "-"}, fake.LastArgs(t))
}

// TestSolcCompileFiles verifies file paths are passed through to solc.
func TestSolcCompileFiles(t *testing.T) {
	fake := testutils.WriteFakeCompiler(t, "solc", testutils.FakeCompiler{
		VersionOutput: solcVersionOutput,
		Stdout:        `{"contracts": {"a.sol:A": {"abi": [], "bin": "00", "bin-runtime": ""}}, "version": "0.8.19"}`,
	})
	solc := &SolcCompilationConfig{Binary: fake.Path}

	compilation, err := solc.CompileFiles([]string{"a.sol", "b.sol"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sol:A"}, compilation.Keys())

	args := fake.LastArgs(t)
	assert.Equal(t, []string{"a.sol", "b.sol"}, args[len(args)-2:])
}

// TestSolcCompilerError verifies a failing compiler is reported with its output intact.
func TestSolcCompilerError(t *testing.T) {
	diagnostics := "<stdin>:1:1: ParserError: Expected pragma, import directive or contract/interface/library definition.\nfoo\n^-^\n"
	fake := testutils.WriteFakeCompiler(t, "solc", testutils.FakeCompiler{
		VersionOutput: solcVersionOutput,
		Stderr:        diagnostics,
		ExitCode:      1,
	})
	solc := &SolcCompilationConfig{Binary: fake.Path}

	_, err := solc.CompileSource("foo")
	require.Error(t, err)

	var compilerErr *CompilerError
	require.True(t, errors.As(err, &compilerErr))
	assert.Equal(t, "solc", compilerErr.Platform)
	assert.Equal(t, diagnostics, compilerErr.Output)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

// TestSolcMissingBinary verifies a missing executable surfaces as an error instead of a panic.
func TestSolcMissingBinary(t *testing.T) {
	solc := &SolcCompilationConfig{Binary: "solc-which-does-not-exist"}
	_, err := solc.Version()
	assert.Error(t, err)
	_, err = solc.CompileSource("contract A {}")
	assert.Error(t, err)
}

// mustVersion parses a version string, failing the test on error.
func mustVersion(t *testing.T, version string) *semver.Version {
	v, err := semver.NewVersion(version)
	require.NoError(t, err)
	return v
}

// TestSolcOutputOptions verifies output options track the solc version.
func TestSolcOutputOptions(t *testing.T) {
	solc := NewSolcCompilationConfig()
	assert.NotContains(t, solc.SetSolcOutputOptions(mustVersion(t, "0.4.11")), "hashes")
	assert.Contains(t, solc.SetSolcOutputOptions(mustVersion(t, "0.5.12")), "compact-format")
	assert.NotContains(t, solc.SetSolcOutputOptions(mustVersion(t, "0.8.19")), "compact-format")
	assert.Contains(t, solc.SetSolcOutputOptions(mustVersion(t, "0.8.19")), "hashes")
}

// TestSimpleSolcCompilation compiles a real contract when solc is installed.
func TestSimpleSolcCompilation(t *testing.T) {
	testutils.RequireCompiler(t, "solc")

	solc := NewSolcCompilationConfig()
	compilation, err := solc.CompileSource(`
contract SimpleSolcCompilation {
    uint x1;

    function setx1(uint val) public {
        x1 = val;
    }
}`)
	require.NoError(t, err)

	contract, ok := compilation.Contract(solc.QualifiedContractKey("SimpleSolcCompilation"))
	require.True(t, ok)
	initBytecode, err := contract.InitBytecode()
	require.NoError(t, err)
	assert.NotEmpty(t, initBytecode)
}
