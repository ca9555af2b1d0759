package testutils

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/compilation/types"
)

// FakePlatform is an in-memory compilation platform returning canned compilations. It satisfies the platforms.Platform
// interface and records how often it was invoked.
type FakePlatform struct {
	// Id is the platform identifier.
	Id string

	// Extension is the source file extension, including the leading dot.
	Extension string

	// KeyPrefix is prepended to contract names to build qualified contract keys.
	KeyPrefix string

	// KeySuffix is appended to contract names to build qualified contract keys.
	KeySuffix string

	// CompilerVersion is the version reported by Version.
	CompilerVersion string

	// Compilation is returned by every successful compile call.
	Compilation *types.Compilation

	// Err is returned by every compile call, if set.
	Err error

	// Sources records the sources handed to CompileSource.
	Sources []string

	// Paths records the path lists handed to CompileFiles.
	Paths [][]string
}

// Platform returns the platform identifier.
func (f *FakePlatform) Platform() string {
	return f.Id
}

// SourceExtension returns the configured source extension.
func (f *FakePlatform) SourceExtension() string {
	return f.Extension
}

// Version parses and returns CompilerVersion.
func (f *FakePlatform) Version() (*semver.Version, error) {
	if f.CompilerVersion == "" {
		return nil, fmt.Errorf("%s: no version configured", f.Id)
	}
	return semver.NewVersion(f.CompilerVersion)
}

// CompileSource records the source and returns the canned compilation.
func (f *FakePlatform) CompileSource(source string) (*types.Compilation, error) {
	f.Sources = append(f.Sources, source)
	return f.result()
}

// CompileFiles records the paths and returns the canned compilation.
func (f *FakePlatform) CompileFiles(paths []string) (*types.Compilation, error) {
	f.Paths = append(f.Paths, append([]string{}, paths...))
	return f.result()
}

// QualifiedContractKey wraps the name with KeyPrefix and KeySuffix.
func (f *FakePlatform) QualifiedContractKey(name string) string {
	return f.KeyPrefix + name + f.KeySuffix
}

// Calls returns the total number of compile invocations.
func (f *FakePlatform) Calls() int {
	return len(f.Sources) + len(f.Paths)
}

// result returns the canned outcome.
func (f *FakePlatform) result() (*types.Compilation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Compilation == nil {
		return types.NewCompilation(f.Id, f.CompilerVersion), nil
	}
	return f.Compilation, nil
}

// NewFakeSolc returns a FakePlatform shaped like solc, keying contracts read from stdin.
func NewFakeSolc(compilation *types.Compilation) *FakePlatform {
	return &FakePlatform{
		Id:              "solc",
		Extension:       ".sol",
		KeyPrefix:       types.StdinSourceName + ":",
		CompilerVersion: "0.5.12",
		Compilation:     compilation,
	}
}

// NewFakeVyper returns a FakePlatform shaped like vyper, keying contracts by source file.
func NewFakeVyper(compilation *types.Compilation) *FakePlatform {
	return &FakePlatform{
		Id:              "vyper",
		Extension:       ".vy",
		KeySuffix:       ".vy",
		CompilerVersion: "0.1.0-b13",
		Compilation:     compilation,
	}
}
