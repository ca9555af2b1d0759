// Package reference holds the content of the Solidity & Vyper reference page, renders it to HTML and verifies every
// checked code example against the real toolchains.
package reference

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/crytic/cheatsheet/snippet"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed reference.yaml
	referenceDocument []byte
)

// CheckKind describes how the code of a cell is verified.
type CheckKind string

const (
	// CheckKindVersion verifies the compiler reports the reference's pinned version.
	CheckKindVersion CheckKind = "version"
	// CheckKindCompiles verifies a complete source unit compiles, without deploying it.
	CheckKindCompiles CheckKind = "compiles"
	// CheckKindContract verifies a complete source unit compiles and deploys.
	CheckKindContract CheckKind = "contract"
	// CheckKindGlobal verifies a declaration compiles and deploys in an otherwise empty contract.
	CheckKindGlobal CheckKind = "global"
	// CheckKindLocal verifies a statement sequence compiles and deploys in an empty constructor.
	CheckKindLocal CheckKind = "local"
	// CheckKindGlobalLocal verifies a declaration block and a constructor-body block compile and deploy together.
	CheckKindGlobalLocal CheckKind = "global+local"
)

// Check describes the verification of a cell.
type Check struct {
	// Kind is the kind of verification.
	Kind CheckKind `yaml:"kind"`

	// Source replaces the cell code as the checked text, for cells which display only part of what compiles.
	Source string `yaml:"source,omitempty"`

	// Declarations is the global-declaration block of a global+local check. The checked text is the body.
	Declarations string `yaml:"declarations,omitempty"`

	// Contract selects a contract by name when the checked source unit defines several.
	Contract string `yaml:"contract,omitempty"`
}

// Cell is the code shown for one language in an entry.
type Cell struct {
	// Code is displayed verbatim in the rendered page.
	Code string `yaml:"code"`

	// Check describes how Code is verified. Cells without a check are displayed only.
	Check *Check `yaml:"check,omitempty"`
}

// CheckedText returns the text a check verifies: the check's source if one is set, or the cell code.
func (c *Cell) CheckedText() string {
	if c.Check != nil && c.Check.Source != "" {
		return c.Check.Source
	}
	return c.Code
}

// Snippet returns the snippet a cell check verifies. Only checks which deploy describe a snippet.
func (c *Cell) Snippet() (snippet.Snippet, error) {
	if c.Check == nil {
		return snippet.Snippet{}, errors.New("the cell has no check")
	}
	placement, err := snippet.ParsePlacement(string(c.Check.Kind))
	if err != nil {
		return snippet.Snippet{}, errors.Errorf("a '%s' check does not verify a snippet", c.Check.Kind)
	}
	return snippet.Snippet{Placement: placement, Text: c.CheckedText(), Declarations: c.Check.Declarations}, nil
}

// Entry is one row of the reference: a feature and its code in each language.
type Entry struct {
	// Feature names the row.
	Feature string `yaml:"feature"`

	// Solidity is the Solidity cell, if the language has the feature.
	Solidity *Cell `yaml:"solidity,omitempty"`

	// Vyper is the Vyper cell, if the language has the feature.
	Vyper *Cell `yaml:"vyper,omitempty"`
}

// Cell returns the cell of the given language, or nil if there is none.
func (e Entry) Cell(language snippet.Language) *Cell {
	switch language {
	case snippet.Solidity:
		return e.Solidity
	case snippet.Vyper:
		return e.Vyper
	default:
		return nil
	}
}

// Section is a titled table of entries.
type Section struct {
	// Title is rendered as the section heading.
	Title string `yaml:"title"`

	// Entries are the rows of the section table.
	Entries []Entry `yaml:"entries"`
}

// Versions pins the compiler versions the reference is written for.
type Versions struct {
	// Solidity is the pinned solc version.
	Solidity string `yaml:"solidity"`

	// Vyper is the pinned vyper version.
	Vyper string `yaml:"vyper"`
}

// ForLanguage returns the pinned version of a language's compiler.
func (v Versions) ForLanguage(language snippet.Language) string {
	if language == snippet.Vyper {
		return v.Vyper
	}
	return v.Solidity
}

// Reference is the whole content of the reference page.
type Reference struct {
	// Title is the page heading.
	Title string `yaml:"title"`

	// Description is the introductory paragraph.
	Description string `yaml:"description"`

	// Versions pins the compiler versions.
	Versions Versions `yaml:"versions"`

	// Sections are rendered in order.
	Sections []Section `yaml:"sections"`
}

// Load parses and validates the reference content embedded in the binary.
func Load() (*Reference, error) {
	return Parse(referenceDocument)
}

// Parse parses and validates a reference document.
func Parse(b []byte) (*Reference, error) {
	var ref Reference
	if err := yaml.Unmarshal(b, &ref); err != nil {
		return nil, errors.Wrap(err, "could not parse reference document")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &ref, nil
}

// Validate checks that every entry is named and that every check is well-formed.
func (r *Reference) Validate() error {
	if r.Title == "" {
		return errors.New("the reference has no title")
	}
	for _, section := range r.Sections {
		if section.Title == "" {
			return errors.New("a reference section has no title")
		}
		for _, entry := range section.Entries {
			if strings.TrimSpace(entry.Feature) == "" {
				return errors.Errorf("an entry of section '%s' has no feature name", section.Title)
			}
			for _, language := range snippet.Languages {
				cell := entry.Cell(language)
				if cell == nil || cell.Check == nil {
					continue
				}
				if err := validateCheck(r, language, cell); err != nil {
					return errors.Wrapf(err, "invalid %s check for '%s' in section '%s'", language.DisplayName(), entry.Feature, section.Title)
				}
			}
		}
	}
	return nil
}

// validateCheck checks a single cell check.
func validateCheck(r *Reference, language snippet.Language, cell *Cell) error {
	switch cell.Check.Kind {
	case CheckKindVersion:
		if r.Versions.ForLanguage(language) == "" {
			return fmt.Errorf("no %s version is pinned", language.DisplayName())
		}
	case CheckKindCompiles, CheckKindContract, CheckKindGlobal, CheckKindLocal:
	case CheckKindGlobalLocal:
		if cell.Check.Declarations == "" {
			return errors.New("a global+local check needs declarations")
		}
	default:
		return fmt.Errorf("unknown check kind '%s'", cell.Check.Kind)
	}

	if cell.Check.Contract != "" && cell.Check.Kind != CheckKindContract {
		return fmt.Errorf("only contract checks can select a contract, not '%s' checks", cell.Check.Kind)
	}
	return nil
}

// CheckCount returns the number of checked cells.
func (r *Reference) CheckCount() int {
	count := 0
	for _, section := range r.Sections {
		for _, entry := range section.Entries {
			for _, language := range snippet.Languages {
				if cell := entry.Cell(language); cell != nil && cell.Check != nil {
					count++
				}
			}
		}
	}
	return count
}
