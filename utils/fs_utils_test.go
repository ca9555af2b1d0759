package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateFile verifies files are created in new directories and that FileExists tells files from directories.
func TestCreateFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "run")
	file, err := CreateFile(dir, "log.txt")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.True(t, FileExists(filepath.Join(dir, "log.txt")))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))

	// A file blocks a directory of the same name
	assert.Error(t, MakeDirectory(filepath.Join(dir, "log.txt")))
	require.NoError(t, MakeDirectory(dir))
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

// TestGetFileNameWithoutExtension verifies directories and the last extension are stripped.
func TestGetFileNameWithoutExtension(t *testing.T) {
	assert.Equal(t, "Token", GetFileNameWithoutExtension(filepath.Join("contracts", "Token.sol")))
	assert.Equal(t, "token.test", GetFileNameWithoutExtension("token.test.vy"))
	assert.Equal(t, "Makefile", GetFileNameWithoutExtension("Makefile"))
}
