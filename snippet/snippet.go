// Package snippet turns documentation code fragments into self-contained source units that a compiler accepts.
package snippet

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Placement describes where a snippet is placed within the wrapper template.
type Placement int

const (
	// Contract indicates the snippet is already a complete source unit.
	Contract Placement = iota
	// Global indicates the snippet is a declaration placed in the contract body, before an empty constructor.
	Global
	// Constructor indicates the snippet is a statement sequence placed in a no-argument constructor body.
	Constructor
	// GlobalConstructor indicates both a declaration block and a constructor-body block are supplied.
	GlobalConstructor
)

// placementNames maps placements to their document identifiers.
var placementNames = map[Placement]string{
	Contract:          "contract",
	Global:            "global",
	Constructor:       "local",
	GlobalConstructor: "global+local",
}

// ParsePlacement parses a placement identifier as used in reference documents.
func ParsePlacement(s string) (Placement, error) {
	for placement, name := range placementNames {
		if name == s {
			return placement, nil
		}
	}
	return 0, errors.Errorf("unknown snippet placement '%s'", s)
}

// String returns the document identifier of the placement.
func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return fmt.Sprintf("placement(%d)", int(p))
}

// MarshalYAML encodes the placement by name.
func (p Placement) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes a placement name.
func (p *Placement) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePlacement(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Snippet is a fragment of source text plus the placement it should be wrapped with.
type Snippet struct {
	// Placement describes how the snippet is embedded.
	Placement Placement

	// Text is the fragment itself. For GlobalConstructor it is the constructor-body block.
	Text string

	// Declarations is the global-declaration block used by GlobalConstructor.
	Declarations string
}

// NewContract returns a snippet that is already a complete source unit.
func NewContract(code string) Snippet {
	return Snippet{Placement: Contract, Text: code}
}

// NewGlobal returns a snippet placed in the contract body.
func NewGlobal(declarations string) Snippet {
	return Snippet{Placement: Global, Text: declarations}
}

// NewLocal returns a snippet placed in the constructor body.
func NewLocal(statements string) Snippet {
	return Snippet{Placement: Constructor, Text: statements}
}

// NewGlobalLocal returns a snippet with both a declaration block and a constructor-body block.
func NewGlobalLocal(declarations string, statements string) Snippet {
	return Snippet{Placement: GlobalConstructor, Text: statements, Declarations: declarations}
}

// reindent joins the lines of s so that every line after the first carries the given indentation. The first line
// is expected to follow an indentation already present in the template.
func reindent(s string, indentation string) string {
	lines := strings.Split(s, "\n")
	return strings.Join(lines, "\n"+indentation)
}
