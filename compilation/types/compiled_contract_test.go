package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleAbi describes a contract with a constructor and a single setter.
const simpleAbi = `[{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},{"inputs":[{"name":"val","type":"uint256"}],"name":"set","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// TestExtractBytecode verifies trailing non-hex text and prefixes are removed, and that extraction is idempotent.
func TestExtractBytecode(t *testing.T) {
	tests := map[string]string{
		"6080604052":                            "6080604052",
		"0x6080604052":                          "6080604052",
		"60806040__$1234abcd$__6000":            "60806040",
		"608060405234801561001057600080fdfe\n": "608060405234801561001057600080fdfe",
		"6080ABCD":                              "6080",
		"":                                      "",
		"zz":                                    "",
	}

	for raw, expected := range tests {
		once := ExtractBytecode(raw)
		assert.Equal(t, expected, once, "raw: %q", raw)
		assert.Equal(t, once, ExtractBytecode(once), "extraction must be idempotent for %q", raw)
	}
}

// TestNewCompiledContract verifies ABI parsing from both string and decoded definitions, and bytecode decoding.
func TestNewCompiledContract(t *testing.T) {
	var decodedAbi any
	require.NoError(t, json.Unmarshal([]byte(simpleAbi), &decodedAbi))

	for _, definition := range []any{simpleAbi, decodedAbi} {
		contract, err := NewCompiledContract(definition, "0x6080604052", "0x60806040")
		require.NoError(t, err)

		assert.Contains(t, contract.Abi.Methods, "set")
		assert.Equal(t, "6080604052", contract.Bin)
		assert.Equal(t, "60806040", contract.BinRuntime)
		assert.False(t, contract.HasUnlinkedLibraries())

		initBytecode, err := contract.InitBytecode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, initBytecode)
	}

	_, err := NewCompiledContract(`{"not": "an abi"`, "", "")
	assert.Error(t, err)
}

// TestCompiledContractLibraries verifies placeholders are detected and the init bytecode is cut before them.
func TestCompiledContractLibraries(t *testing.T) {
	placeholder := GenerateLibraryPlaceholder("<stdin>:Math")
	contract, err := NewCompiledContract(simpleAbi, "6080604052__$"+placeholder+"$__6000", "")
	require.NoError(t, err)
	require.True(t, contract.HasUnlinkedLibraries())

	initBytecode, err := contract.InitBytecode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, initBytecode)

	compilation := NewCompilation("solc", "0.5.12")
	compilation.Contracts["<stdin>:Math"] = CompiledContract{BinRuntime: "73000000000000000000000000000000000000000000"}
	compilation.Contracts["<stdin>:User"] = *contract
	compilation.ResolveLibraryPlaceholders()

	user, ok := compilation.Contract("<stdin>:User")
	require.True(t, ok)
	assert.Equal(t, []string{"<stdin>:Math"}, user.UnresolvedLibraries())
}

// TestCompiledContractJSON verifies the normalized JSON shape and that decoding restores the parsed ABI.
func TestCompiledContractJSON(t *testing.T) {
	contract, err := NewCompiledContract(simpleAbi, "6080", "6000")
	require.NoError(t, err)

	b, err := json.Marshal(contract)
	require.NoError(t, err)

	var shape map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &shape))
	assert.Contains(t, shape, "bin")
	assert.Contains(t, shape, "abi")
	assert.Contains(t, shape, "bin-runtime")

	var decoded CompiledContract
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Contains(t, decoded.Abi.Methods, "set")
	assert.Equal(t, contract.Bin, decoded.Bin)
}

// TestCompilationKeys verifies key ordering and splitting.
func TestCompilationKeys(t *testing.T) {
	compilation := NewCompilation("solc", "")
	compilation.Contracts["<stdin>:B"] = CompiledContract{}
	compilation.Contracts["<stdin>:A"] = CompiledContract{}

	assert.Equal(t, 2, compilation.Len())
	assert.Equal(t, []string{"<stdin>:A", "<stdin>:B"}, compilation.Keys())

	source, name := SplitContractKey("C:/contracts/token.sol:Token")
	assert.Equal(t, "C:/contracts/token.sol", source)
	assert.Equal(t, "Token", name)

	source, name = SplitContractKey("main.vy")
	assert.Equal(t, "main.vy", source)
	assert.Empty(t, name)

	assert.Equal(t, "<stdin>:A", JoinContractKey(StdinSourceName, "A"))
}

// TestExtractContractMetadata verifies CBOR metadata appended by solc is decoded.
func TestExtractContractMetadata(t *testing.T) {
	hash := bytes.Repeat([]byte{0xab}, 34)

	var bytecode []byte
	bytecode = append(bytecode, 0x60, 0x80, 0x60, 0x40, 0x52, 0xfe)
	bytecode = append(bytecode, 0xa2, 0x64, 'i', 'p', 'f', 's', 0x58, 0x22)
	bytecode = append(bytecode, hash...)
	bytecode = append(bytecode, 0x64, 's', 'o', 'l', 'c', 0x43, 0x00, 0x08, 0x13)

	metadata := ExtractContractMetadata(bytecode)
	require.NotNil(t, metadata)
	assert.Equal(t, hash, metadata.ExtractBytecodeHash())
	assert.Equal(t, "0.8.19", metadata.CompilerVersion())

	assert.Nil(t, ExtractContractMetadata([]byte{0x60, 0x80}))

	contract, err := NewCompiledContract(simpleAbi, "6080", hex.EncodeToString(bytecode)+"0032")
	require.NoError(t, err)
	assert.Equal(t, "0.8.19", contract.EmbeddedCompilerVersion())

	contract, err = NewCompiledContract(simpleAbi, "6080", "6080")
	require.NoError(t, err)
	assert.Empty(t, contract.EmbeddedCompilerVersion())
}

// TestInitBytecodeOddLength verifies an odd nibble left before a placeholder is detected and dropped.
func TestInitBytecodeOddLength(t *testing.T) {
	contract, err := NewCompiledContract(simpleAbi, "6080604052__$aa$__", "")
	require.NoError(t, err)
	assert.False(t, contract.InitBytecodeHasOddLength())

	contract, err = NewCompiledContract(simpleAbi, "60806040526__$aa$__", "")
	require.NoError(t, err)
	assert.True(t, contract.InitBytecodeHasOddLength())
	initBytecode, err := contract.InitBytecode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, initBytecode)
}
