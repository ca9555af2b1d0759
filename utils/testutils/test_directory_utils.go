package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTestFile writes contents to a file with the given name in a fresh temporary directory and returns its path.
func WriteTestFile(t *testing.T, fileName string, contents string) string {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}
