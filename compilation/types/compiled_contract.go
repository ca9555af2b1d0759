package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// CompiledContract represents a single contract unit from a smart contract compilation. Its JSON form is the
// normalized shape shared by every compilation platform: "bin", "abi" and "bin-runtime".
type CompiledContract struct {
	// Abi describes a contract's application binary interface, a structure used to describe information needed
	// to interact with the contract such as constructor and function definitions with input/output variable
	// information, event declarations, and fallback and receive methods.
	Abi abi.ABI `json:"-"`

	// AbiJSON is the interface descriptor exactly as the compiler emitted it.
	AbiJSON json.RawMessage `json:"abi"`

	// Bin is the raw hex-encoded init bytecode without a "0x" prefix. It may carry compiler-specific trailing non-hex
	// text, such as unlinked library placeholders. Use InitBytecode to obtain deployable bytes.
	Bin string `json:"bin"`

	// BinRuntime is the raw hex-encoded runtime bytecode without a "0x" prefix, if the compiler provided it.
	BinRuntime string `json:"bin-runtime,omitempty"`

	// LibraryPlaceholders maps placeholder strings found in Bin to library names (if known).
	LibraryPlaceholders map[string]any `json:"-"`
}

// NewCompiledContract creates a CompiledContract from a compiler's ABI definition (either a JSON string or a decoded
// JSON value) and its init and runtime bytecode strings. A "0x" prefix on either bytecode is removed.
func NewCompiledContract(abiDefinition any, bin string, binRuntime string) (*CompiledContract, error) {
	abiJSON, err := abiDefinitionToJSON(abiDefinition)
	if err != nil {
		return nil, err
	}

	contractAbi, err := ParseABIFromInterface(string(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("could not parse contract abi: %v", err)
	}

	bin = strings.TrimPrefix(bin, "0x")
	return &CompiledContract{
		Abi:                 *contractAbi,
		AbiJSON:             abiJSON,
		Bin:                 bin,
		BinRuntime:          strings.TrimPrefix(binRuntime, "0x"),
		LibraryPlaceholders: ParseBytecodeForPlaceholders(bin),
	}, nil
}

// UnmarshalJSON decodes the normalized JSON shape and re-parses the ABI.
func (c *CompiledContract) UnmarshalJSON(b []byte) error {
	type normalized CompiledContract
	var decoded normalized
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}

	contract, err := NewCompiledContract(decoded.AbiJSON, decoded.Bin, decoded.BinRuntime)
	if err != nil {
		return err
	}
	*c = *contract
	return nil
}

// InitBytecode returns the decoded init bytecode, after removing any trailing non-hex text from Bin.
func (c *CompiledContract) InitBytecode() ([]byte, error) {
	return decodeBytecode(c.Bin)
}

// RuntimeBytecode returns the decoded runtime bytecode, after removing any trailing non-hex text from BinRuntime.
func (c *CompiledContract) RuntimeBytecode() ([]byte, error) {
	return decodeBytecode(c.BinRuntime)
}

// HasUnlinkedLibraries indicates whether the init bytecode still contains library placeholders.
func (c *CompiledContract) HasUnlinkedLibraries() bool {
	return len(c.LibraryPlaceholders) > 0
}

// Metadata extracts the CBOR-encoded compiler metadata from the runtime bytecode, or returns nil if there is none.
func (c *CompiledContract) Metadata() *ContractMetadata {
	runtimeBytecode, err := c.RuntimeBytecode()
	if err != nil || len(runtimeBytecode) == 0 {
		return nil
	}
	return ExtractContractMetadata(runtimeBytecode)
}

// EmbeddedCompilerVersion returns the solc version recorded in the runtime bytecode's metadata, or an empty string if
// the artifact carries none.
func (c *CompiledContract) EmbeddedCompilerVersion() string {
	metadata := c.Metadata()
	if metadata == nil {
		return ""
	}
	return metadata.CompilerVersion()
}

// InitBytecodeHasOddLength indicates whether the hexadecimal part of Bin has an odd length, in which case
// InitBytecode drops its trailing nibble.
func (c *CompiledContract) InitBytecodeHasOddLength() bool {
	return len(ExtractBytecode(c.Bin))%2 != 0
}

// decodeBytecode extracts the hexadecimal part of a raw bytecode string and decodes it. An odd trailing nibble, which
// can be left behind when a placeholder is cut away, is dropped.
func decodeBytecode(raw string) ([]byte, error) {
	bytecode := ExtractBytecode(raw)
	if len(bytecode)%2 != 0 {
		bytecode = bytecode[:len(bytecode)-1]
	}
	decoded, err := hex.DecodeString(bytecode)
	if err != nil {
		return nil, fmt.Errorf("could not decode bytecode: %v", err)
	}
	return decoded, nil
}

// abiDefinitionToJSON serializes an ABI definition into JSON, passing through JSON strings and raw messages as-is.
func abiDefinitionToJSON(abiDefinition any) (json.RawMessage, error) {
	switch t := abiDefinition.(type) {
	case nil:
		return json.RawMessage("[]"), nil
	case string:
		return json.RawMessage(t), nil
	case json.RawMessage:
		if len(t) == 0 {
			return json.RawMessage("[]"), nil
		}
		return t, nil
	case []byte:
		return json.RawMessage(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("could not encode contract abi: %v", err)
		}
		return b, nil
	}
}

// ParseABIFromInterface parses a generic object into an abi.ABI and returns it, or an error if one occurs.
func ParseABIFromInterface(i any) (*abi.ABI, error) {
	var (
		result abi.ABI
		err    error
	)

	// If it's a string, just parse it. Otherwise, we assume it's an interface and serialize it into a string.
	if s, ok := i.(string); ok {
		result, err = abi.JSON(strings.NewReader(s))
		if err != nil {
			return nil, err
		}
	} else {
		var b []byte
		b, err = json.Marshal(i)
		if err != nil {
			return nil, err
		}
		result, err = abi.JSON(strings.NewReader(string(b)))
		if err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// libraryPlaceholderRegex matches both the legacy "__<name>__" and the "__$<hash>$__" placeholder formats.
var libraryPlaceholderRegex = regexp.MustCompile(`__(\$[0-9a-zA-Z]*\$|\w*)__`)

// ParseBytecodeForPlaceholders analyzes the given bytecode string to identify and extract all library placeholder
// patterns embedded within it. The returned map is keyed by placeholder identifier (without the "__" and "$"
// delimiters) and its values are nil until they are resolved to library names.
func ParseBytecodeForPlaceholders(bytecode string) map[string]any {
	substrings := libraryPlaceholderRegex.FindAllString(bytecode, -1)

	substringSet := make(map[string]any)
	for _, substring := range substrings {
		substring = strings.ReplaceAll(strings.ReplaceAll(substring, "_", ""), "$", "")
		if _, exists := substringSet[substring]; !exists {
			substringSet[substring] = nil
		}
	}
	return substringSet
}
