package types

import "strings"

// hexAlphabet is the set of characters compilers emit for bytecode. Upper-case digits are never emitted and are treated
// like any other non-hex trailing text.
const hexAlphabet = "0123456789abcdef"

// ExtractBytecode returns the hexadecimal bytecode contained in a raw compiler bytecode string. An optional "0x" prefix
// is removed, then the string is truncated at the first character outside the hexadecimal alphabet, which drops any
// trailing non-hex metadata or unlinked library placeholders some compilers append. ExtractBytecode is idempotent.
func ExtractBytecode(raw string) string {
	bytecode := strings.TrimPrefix(raw, "0x")
	if i := strings.IndexFunc(bytecode, func(r rune) bool {
		return !strings.ContainsRune(hexAlphabet, r)
	}); i >= 0 {
		return bytecode[:i]
	}
	return bytecode
}
