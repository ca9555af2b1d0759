package snippet

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedLanguage is returned when a language identifier is neither Solidity nor Vyper.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language identifies one of the two smart contract languages the reference compares.
type Language string

const (
	// Solidity is compiled with solc
	Solidity Language = "solidity"
	// Vyper is compiled with vyper
	Vyper Language = "vyper"
)

// Languages lists every supported language in the order they are rendered.
var Languages = []Language{Solidity, Vyper}

// ParseLanguage parses a language identifier, case-insensitively. File extensions are accepted as aliases.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solidity", "sol":
		return Solidity, nil
	case "vyper", "vy":
		return Vyper, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedLanguage, "'%s'", s)
	}
}

// String returns the language identifier
func (l Language) String() string {
	return string(l)
}

// DisplayName returns the name used in rendered headers.
func (l Language) DisplayName() string {
	switch l {
	case Solidity:
		return "Solidity"
	case Vyper:
		return "Vyper"
	default:
		return string(l)
	}
}

// indentation returns the indentation used inside a constructor body for the language.
func (l Language) indentation() string {
	if l == Vyper {
		return strings.Repeat(" ", 4)
	}
	return strings.Repeat(" ", 8)
}
