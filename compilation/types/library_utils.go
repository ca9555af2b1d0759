package types

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
)

// GenerateLibraryPlaceholder creates a library placeholder based on the keccak256 hash of the fully qualified library
// name according to Solidity's algorithm.
func GenerateLibraryPlaceholder(fullyQualifiedName string) string {
	hash := crypto.Keccak256Hash([]byte(fullyQualifiedName))

	// The placeholder is the first 34 characters (17 bytes) of the hex-encoded hash
	return hex.EncodeToString(hash.Bytes())[:34]
}

// ResolveLibraryPlaceholders maps the library placeholders of every contract in the compilation to the key of the
// library contract they refer to. Placeholders which could not be resolved keep a nil value. Legacy placeholders,
// which embed the (possibly truncated) library key directly, are resolved by prefix.
func (c *Compilation) ResolveLibraryPlaceholders() {
	placeholderToKey := make(map[string]string, len(c.Contracts))
	for key := range c.Contracts {
		placeholderToKey[GenerateLibraryPlaceholder(key)] = key
	}

	for _, contract := range c.Contracts {
		for placeholder := range contract.LibraryPlaceholders {
			if key, ok := placeholderToKey[placeholder]; ok {
				contract.LibraryPlaceholders[placeholder] = key
				continue
			}
			for key := range c.Contracts {
				if len(placeholder) > 0 && len(key) >= len(placeholder) && key[:len(placeholder)] == placeholder {
					contract.LibraryPlaceholders[placeholder] = key
					break
				}
			}
		}
	}
}

// UnresolvedLibraries returns the library keys (or raw placeholders, if unresolved) the contract requires linking
// against.
func (c *CompiledContract) UnresolvedLibraries() []string {
	libraries := make([]string, 0, len(c.LibraryPlaceholders))
	for placeholder, library := range c.LibraryPlaceholders {
		if name, ok := library.(string); ok && name != "" {
			libraries = append(libraries, name)
		} else {
			libraries = append(libraries, placeholder)
		}
	}
	return libraries
}
