package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Compilation represents the artifacts of one compiler invocation, normalized across compilation platforms.
type Compilation struct {
	// Platform is the identifier of the platform which produced the compilation.
	Platform string `json:"platform"`

	// CompilerVersion is the version string reported by the compiler, if known.
	CompilerVersion string `json:"compilerVersion,omitempty"`

	// Contracts maps compiler-specific contract keys to their compiled artifacts. For solc, keys take the form
	// "<source>:<ContractName>". For vyper, keys are the source file keys.
	Contracts map[string]CompiledContract `json:"contracts"`
}

// NewCompilation returns a new, empty Compilation object.
func NewCompilation(platform string, compilerVersion string) *Compilation {
	return &Compilation{
		Platform:        platform,
		CompilerVersion: compilerVersion,
		Contracts:       make(map[string]CompiledContract),
	}
}

// Len returns the amount of contracts in the compilation.
func (c *Compilation) Len() int {
	return len(c.Contracts)
}

// Keys returns the contract keys of the compilation in sorted order.
func (c *Compilation) Keys() []string {
	keys := make([]string, 0, len(c.Contracts))
	for key := range c.Contracts {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Contract returns the contract stored under the exact key provided.
func (c *Compilation) Contract(key string) (*CompiledContract, bool) {
	contract, ok := c.Contracts[key]
	if !ok {
		return nil, false
	}
	return &contract, true
}

// SplitContractKey splits a contract key of the form "<source>:<ContractName>" into its source path and contract
// name. Source paths may themselves contain colons. A key without a colon is returned as the source path with an
// empty contract name.
func SplitContractKey(key string) (string, string) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return key, ""
	}
	return key[:i], key[i+1:]
}

// JoinContractKey builds a "<source>:<ContractName>" contract key.
func JoinContractKey(sourcePath string, contractName string) string {
	return sourcePath + ":" + contractName
}
