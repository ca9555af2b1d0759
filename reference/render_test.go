package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRenderEmbedded verifies the embedded reference renders its heading, intro and version row.
func TestRenderEmbedded(t *testing.T) {
	ref, err := Load()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Render(&sb, ref))
	page := sb.String()

	assert.True(t, strings.HasPrefix(page, "<html>"))
	assert.Contains(t, page, "<h1>Solidity &amp; Vyper Cheat Sheet</h1>")
	assert.Contains(t, page, "<p>A feature by feature reference guide to the two most popular programming languages on Ethereum.</p>")
	assert.Contains(t, page, "<h2>Setup and basic syntax</h2>")
	assert.Contains(t, page, "<th>Feature</th>\n        <th>Solidity</th>\n        <th>Vyper</th>")
	assert.Contains(t, page, "<th>Version</th>\n        <td><pre>$ solc --version\nVersion: 0.5.12</pre></td>\n        <td><pre>$ vyper --version\n0.1.0b13 (0.1.0 Beta 13)</pre></td>")
	assert.Equal(t, len(ref.Sections), strings.Count(page, "<table>"))
}

// TestRenderEscapesCode verifies code is escaped and missing cells render empty.
func TestRenderEscapesCode(t *testing.T) {
	ref := &Reference{
		Title: "t",
		Sections: []Section{{
			Title: "s",
			Entries: []Entry{{
				Feature:  "Mapping",
				Solidity: &Cell{Code: "mapping(address => uint) m;"},
			}},
		}},
	}

	var sb strings.Builder
	require.NoError(t, Render(&sb, ref))
	assert.Contains(t, sb.String(), "<td><pre>mapping(address =&gt; uint) m;</pre></td>\n        <td></td>")
}

// TestRenderToFile verifies the page is written to a new directory.
func TestRenderToFile(t *testing.T) {
	ref, err := Load()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "site", "index.html")
	require.NoError(t, RenderToFile(ref, path))

	var sb strings.Builder
	require.NoError(t, Render(&sb, ref))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sb.String(), string(written))
}
