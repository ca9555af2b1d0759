package harness

import (
	"strings"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/utils"
	"github.com/pkg/errors"
)

// PathPlatformSelector selects the compilation platform for a source file.
type PathPlatformSelector interface {
	ForPath(path string) platforms.Platform
}

// CompileContracts compiles source text without selecting a contract.
func CompileContracts(platform platforms.Platform, source string) (*types.Compilation, error) {
	return platform.CompileSource(source)
}

// CompileSingleContract compiles source text which must define exactly one contract, and returns it.
func CompileSingleContract(platform platforms.Platform, source string) (*types.CompiledContract, error) {
	compilation, err := platform.CompileSource(source)
	if err != nil {
		return nil, err
	}
	return singleContract(compilation)
}

// CompileNamedContract compiles source text and returns the first contract, in key order, whose key contains name.
func CompileNamedContract(platform platforms.Platform, source string, name string) (*types.CompiledContract, error) {
	compilation, err := platform.CompileSource(source)
	if err != nil {
		return nil, err
	}

	for _, key := range compilation.Keys() {
		if strings.Contains(key, name) {
			contract, _ := compilation.Contract(key)
			return contract, nil
		}
	}
	return nil, errors.Wrapf(ErrContractNotFound, "no contract matching '%s' in %v", name, compilation.Keys())
}

// CompileSpecificContract compiles source text and returns the contract stored under the platform's fully qualified
// key for name.
func CompileSpecificContract(platform platforms.Platform, source string, name string) (*types.CompiledContract, error) {
	compilation, err := platform.CompileSource(source)
	if err != nil {
		return nil, err
	}

	key := platform.QualifiedContractKey(name)
	contract, ok := compilation.Contract(key)
	if !ok {
		return nil, errors.Wrapf(ErrContractNotFound, "contract '%s' is not in the source (looked for '%s')", name, key)
	}
	return contract, nil
}

// CompileSingleContractFromFiles compiles the provided files as one batch with the platform selected by the first
// file's extension, and returns one contract:
//   - If contract is set, the contract whose key names it (e.g. "<path>:<contract>"), or whose source file is named
//     after it, is preferred.
//   - Otherwise, if the platform keys contracts by file, the contract keyed by the first file is returned whatever
//     contract says.
//   - Otherwise, contract must be set, or the batch must produce exactly one contract.
func CompileSingleContractFromFiles(selector PathPlatformSelector, paths []string, contract string) (*types.CompiledContract, error) {
	if len(paths) == 0 {
		return nil, errors.Wrap(ErrFileNotFound, "no source files were provided")
	}
	for _, path := range paths {
		if !utils.FileExists(path) {
			return nil, errors.Wrapf(ErrFileNotFound, "'%s'", path)
		}
	}

	platform := selector.ForPath(paths[0])
	compilation, err := platform.CompileFiles(paths)
	if err != nil {
		return nil, err
	}

	if contract != "" {
		for _, key := range compilation.Keys() {
			if _, name := types.SplitContractKey(key); name == contract {
				compiled, _ := compilation.Contract(key)
				return compiled, nil
			}
		}
		for _, path := range paths {
			if utils.GetFileNameWithoutExtension(path) != contract {
				continue
			}
			if compiled, ok := compilation.Contract(path); ok {
				return compiled, nil
			}
		}
	}

	if primary, ok := compilation.Contract(paths[0]); ok {
		return primary, nil
	}
	if contract == "" {
		return singleContract(compilation)
	}
	return nil, errors.Wrapf(ErrContractNotFound, "no contract with name '%s' found in %v", contract, compilation.Keys())
}

// singleContract returns the only contract of a compilation.
func singleContract(compilation *types.Compilation) (*types.CompiledContract, error) {
	keys := compilation.Keys()
	switch len(keys) {
	case 0:
		return nil, errors.WithStack(ErrNoContracts)
	case 1:
		contract, _ := compilation.Contract(keys[0])
		return contract, nil
	default:
		return nil, errors.Wrapf(ErrMultipleContracts, "can only handle single contracts, found %v", keys)
	}
}
