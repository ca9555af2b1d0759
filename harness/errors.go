package harness

import "github.com/pkg/errors"

var (
	// ErrMultipleContracts is returned when a compilation yields more than one contract and no contract was named to
	// disambiguate.
	ErrMultipleContracts = errors.New("multiple contracts without disambiguation")

	// ErrContractNotFound is returned when the requested contract is absent from a compilation.
	ErrContractNotFound = errors.New("named contract not found")

	// ErrFileNotFound is returned when a listed source file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoContracts is returned when a compilation yields no contracts at all.
	ErrNoContracts = errors.New("compilation produced no contracts")

	// ErrVersionMismatch is returned when a compiler reports a version other than the pinned one.
	ErrVersionMismatch = errors.New("compiler version mismatch")
)
