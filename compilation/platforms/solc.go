package platforms

import (
	"io"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/utils"
	"github.com/ethereum/go-ethereum/common/compiler"
	"github.com/pkg/errors"
)

// SolcCompilationConfig describes how to invoke solc.
type SolcCompilationConfig struct {
	// Binary is the solc executable name or path.
	Binary string `json:"binary"`

	// Args are extra arguments passed to solc before the input sources (e.g. "--evm-version").
	Args []string `json:"args,omitempty"`
}

// NewSolcCompilationConfig returns a SolcCompilationConfig which invokes solc from the PATH.
func NewSolcCompilationConfig() *SolcCompilationConfig {
	return &SolcCompilationConfig{
		Binary: "solc",
		Args:   []string{},
	}
}

// Platform returns the platform identifier.
func (s *SolcCompilationConfig) Platform() string {
	return "solc"
}

// SourceExtension returns the Solidity source file extension.
func (s *SolcCompilationConfig) SourceExtension() string {
	return ".sol"
}

// QualifiedContractKey returns the key solc assigns to a contract read from standard input.
func (s *SolcCompilationConfig) QualifiedContractKey(name string) string {
	return types.JoinContractKey(types.StdinSourceName, name)
}

// binary returns the configured executable, defaulting to solc.
func (s *SolcCompilationConfig) binary() string {
	if s.Binary == "" {
		return "solc"
	}
	return s.Binary
}

// Version runs `solc --version` and parses the compiler version from its output.
func (s *SolcCompilationConfig) Version() (*semver.Version, error) {
	return getCompilerVersion(s.Platform(), s.binary())
}

// SetSolcOutputOptions determines what outputOptions should be provided to solc given a semver.Version
func (s *SolcCompilationConfig) SetSolcOutputOptions(v *semver.Version) string {
	// useCompactFormat will add the compact-format output option
	// if version is 0.4.12-0.4.26 or 0.5.0-0.5.17 or 0.6.0-0.6.12 or 0.7.0-0.7.6 or 0.8.0-0.8.9
	useCompactFormat := (v.Major() == 0 && v.Minor() == 4 && v.Patch() >= 12 && v.Patch() <= 26) ||
		(v.Major() == 0 && v.Minor() == 5 && v.Patch() <= 17) ||
		(v.Major() == 0 && v.Minor() == 6 && v.Patch() <= 12) ||
		(v.Major() == 0 && v.Minor() == 7 && v.Patch() <= 6) ||
		(v.Major() == 0 && v.Minor() == 8 && v.Patch() <= 9)

	// if version is 0.3.0-0.3.6 or 0.4.0-0.4.11 no 'hashes' outputOption
	if (v.Major() == 0 && v.Minor() == 4 && v.Patch() <= 11) || (v.Major() == 0 && v.Minor() == 3 && v.Patch() <= 6) {
		return "abi,bin,bin-runtime,srcmap,srcmap-runtime,userdoc,devdoc"
	} else if useCompactFormat {
		return "abi,bin,bin-runtime,srcmap,srcmap-runtime,userdoc,devdoc,hashes,compact-format"
	} else {
		return "abi,bin,bin-runtime,srcmap,srcmap-runtime,userdoc,devdoc,hashes"
	}
}

// CompileSource compiles Solidity source text by passing it to solc on standard input. Contract keys take the form
// "<stdin>:<ContractName>".
func (s *SolcCompilationConfig) CompileSource(source string) (*types.Compilation, error) {
	return s.compile(strings.NewReader(source), source, []string{"-"})
}

// CompileFiles compiles the provided Solidity files. Contract keys take the form "<path>:<ContractName>".
func (s *SolcCompilationConfig) CompileFiles(paths []string) (*types.Compilation, error) {
	return s.compile(nil, "", paths)
}

// compile runs solc with combined JSON output over the given inputs and normalizes the result.
func (s *SolcCompilationConfig) compile(stdin io.Reader, source string, inputs []string) (*types.Compilation, error) {
	// Obtain our solc version to determine which output options are supported
	v, err := s.Version()
	if err != nil {
		return nil, err
	}
	outputOptions := s.SetSolcOutputOptions(v)

	args := append([]string{}, s.Args...)
	args = append(args, "--combined-json", outputOptions)
	args = append(args, inputs...)
	cmd := exec.Command(s.binary(), args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	cmdStdout, _, cmdCombined, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return nil, &CompilerError{
			Platform: s.Platform(),
			Command:  cmd.String(),
			Output:   string(cmdCombined),
			Err:      err,
		}
	}

	// Parse our contracts from solc output
	contracts, err := compiler.ParseCombinedJSON(cmdStdout, source, v.String(), v.String(), strings.Join(s.Args, " "))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse solc combined json output")
	}

	compilation := types.NewCompilation(s.Platform(), v.String())
	for name, contract := range contracts {
		compiledContract, err := types.NewCompiledContract(contract.Info.AbiDefinition, contract.Code, contract.RuntimeCode)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse compiled contract '%s'", name)
		}
		compilation.Contracts[name] = *compiledContract
	}
	compilation.ResolveLibraryPlaceholders()

	return compilation, nil
}
