package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRevision verifies commits are abbreviated and marked dirty.
func TestRevision(t *testing.T) {
	assert.Empty(t, Info{}.Revision())
	assert.Equal(t, "abc", Info{GitCommit: "abc"}.Revision())
	assert.Equal(t, "0123456", Info{GitCommit: "0123456789abcdef"}.Revision())
	assert.Equal(t, "0123456-dirty", Info{GitCommit: "0123456789abcdef", Dirty: true}.Revision())
}

// TestString verifies the build description lists the pinned toolchains.
func TestString(t *testing.T) {
	info := Info{Version: "0.1.0", GitCommit: "0123456789", GoVersion: "go1.23.3"}
	assert.Equal(t,
		"cheatsheet version 0.1.0\n  Commit:     0123456\n  Go version: go1.23.3\n  solc:       0.5.12\n  vyper:      0.1.0b13\n",
		info.String("0.5.12", "0.1.0b13"))

	assert.Equal(t, Version, GetInfo().Version)
}
