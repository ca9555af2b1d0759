package reference

import (
	"testing"

	"github.com/crytic/cheatsheet/snippet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad verifies the embedded reference parses and starts with the version row.
func TestLoad(t *testing.T) {
	ref, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Solidity & Vyper Cheat Sheet", ref.Title)
	assert.Equal(t, "A feature by feature reference guide to the two most popular programming languages on Ethereum.", ref.Description)
	assert.Equal(t, Versions{Solidity: "0.5.12", Vyper: "0.1.0b13"}, ref.Versions)

	require.NotEmpty(t, ref.Sections)
	setup := ref.Sections[0]
	assert.Equal(t, "Setup and basic syntax", setup.Title)
	require.NotEmpty(t, setup.Entries)

	version := setup.Entries[0]
	assert.Equal(t, "Version", version.Feature)
	assert.Equal(t, "$ solc --version\nVersion: 0.5.12", version.Solidity.Code)
	assert.Equal(t, "$ vyper --version\n0.1.0b13 (0.1.0 Beta 13)", version.Vyper.Code)
	assert.Equal(t, CheckKindVersion, version.Solidity.Check.Kind)
	assert.Equal(t, CheckKindVersion, version.Vyper.Check.Kind)

	assert.Positive(t, ref.CheckCount())
}

// TestParseInvalid verifies malformed documents and checks are rejected.
func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{name: "not yaml", document: "title: [unterminated"},
		{name: "no title", document: "sections: []"},
		{
			name:     "unnamed section",
			document: "title: t\nsections:\n  - entries: []",
		},
		{
			name:     "unnamed entry",
			document: "title: t\nsections:\n  - title: s\n    entries:\n      - feature: ' '",
		},
		{
			name:     "unknown kind",
			document: "title: t\nsections:\n  - title: s\n    entries:\n      - feature: f\n        solidity:\n          code: x\n          check:\n            kind: runs",
		},
		{
			name:     "unpinned version",
			document: "title: t\nsections:\n  - title: s\n    entries:\n      - feature: f\n        vyper:\n          code: x\n          check:\n            kind: version",
		},
		{
			name:     "global+local without declarations",
			document: "title: t\nsections:\n  - title: s\n    entries:\n      - feature: f\n        solidity:\n          code: x\n          check:\n            kind: global+local",
		},
		{
			name:     "contract name on a local check",
			document: "title: t\nsections:\n  - title: s\n    entries:\n      - feature: f\n        solidity:\n          code: x\n          check:\n            kind: local\n            contract: C",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.document))
			assert.Error(t, err)
		})
	}
}

// TestCellSnippet verifies cells are turned into the snippet their check verifies.
func TestCellSnippet(t *testing.T) {
	cell := &Cell{Code: "x = 1;", Check: &Check{Kind: CheckKindLocal}}
	s, err := cell.Snippet()
	require.NoError(t, err)
	assert.Equal(t, snippet.NewLocal("x = 1;"), s)

	cell = &Cell{
		Code:  "event E();\n\nemit E();",
		Check: &Check{Kind: CheckKindGlobalLocal, Declarations: "event E();", Source: "emit E();"},
	}
	s, err = cell.Snippet()
	require.NoError(t, err)
	assert.Equal(t, snippet.NewGlobalLocal("event E();", "emit E();"), s)

	cell = &Cell{Code: "contract C {}", Check: &Check{Kind: CheckKindContract}}
	s, err = cell.Snippet()
	require.NoError(t, err)
	assert.Equal(t, snippet.NewContract("contract C {}"), s)

	_, err = (&Cell{Code: "$ solc --version", Check: &Check{Kind: CheckKindVersion}}).Snippet()
	assert.Error(t, err)
	_, err = (&Cell{Code: "x"}).Snippet()
	assert.Error(t, err)
}

// TestEntryCell verifies cells are looked up by language.
func TestEntryCell(t *testing.T) {
	entry := Entry{Feature: "Inheritance", Solidity: &Cell{Code: "contract Child is Parent {}"}}
	assert.Same(t, entry.Solidity, entry.Cell(snippet.Solidity))
	assert.Nil(t, entry.Cell(snippet.Vyper))
	assert.Nil(t, entry.Cell(snippet.Language("fe")))
}
