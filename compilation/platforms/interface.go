package platforms

import (
	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/compilation/types"
)

// Platform describes a compiler toolchain which turns source text or source files into a normalized
// types.Compilation. Every toolchain-specific output shape is converted at this boundary.
type Platform interface {
	// Platform returns the identifier of the platform.
	Platform() string

	// SourceExtension returns the file extension of sources handled by the platform, including the leading dot.
	SourceExtension() string

	// Version returns the version of the underlying compiler.
	Version() (*semver.Version, error)

	// CompileSource compiles a single source unit provided as text.
	CompileSource(source string) (*types.Compilation, error)

	// CompileFiles compiles the provided files as one batch.
	CompileFiles(paths []string) (*types.Compilation, error)

	// QualifiedContractKey returns the fully qualified contract key a contract with the given name receives when it is
	// compiled through CompileSource.
	QualifiedContractKey(name string) string
}
