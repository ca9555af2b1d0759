package platforms

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/utils"
	"github.com/pkg/errors"
)

// VyperMainSourceName is the file name source text is written to when compiled through CompileSource.
const VyperMainSourceName = "main.vy"

// VyperCompilationConfig describes how to invoke vyper.
type VyperCompilationConfig struct {
	// Binary is the vyper executable name or path.
	Binary string `json:"binary"`

	// Args are extra arguments passed to vyper before the input sources (e.g. "--evm-version").
	Args []string `json:"args,omitempty"`
}

// vyperContractOutput is the per-source shape of vyper's combined_json output.
type vyperContractOutput struct {
	Bytecode        string          `json:"bytecode"`
	BytecodeRuntime string          `json:"bytecode_runtime"`
	Abi             json.RawMessage `json:"abi"`
}

// vyperSourceUnit is a single source handed to vyper, along with the key it is reported under.
type vyperSourceUnit struct {
	key      string
	relPath  string
	contents []byte
}

// NewVyperCompilationConfig returns a VyperCompilationConfig which invokes vyper from the PATH.
func NewVyperCompilationConfig() *VyperCompilationConfig {
	return &VyperCompilationConfig{
		Binary: "vyper",
		Args:   []string{},
	}
}

// Platform returns the platform identifier.
func (v *VyperCompilationConfig) Platform() string {
	return "vyper"
}

// SourceExtension returns the Vyper source file extension.
func (v *VyperCompilationConfig) SourceExtension() string {
	return ".vy"
}

// QualifiedContractKey returns the key of a Vyper source file holding the named contract. Source text compiled
// through CompileSource is reported as VyperMainSourceName, i.e. under the name "main".
func (v *VyperCompilationConfig) QualifiedContractKey(name string) string {
	return name + v.SourceExtension()
}

// binary returns the configured executable, defaulting to vyper.
func (v *VyperCompilationConfig) binary() string {
	if v.Binary == "" {
		return "vyper"
	}
	return v.Binary
}

// Version runs `vyper --version` and parses the compiler version from its output.
func (v *VyperCompilationConfig) Version() (*semver.Version, error) {
	return getCompilerVersion(v.Platform(), v.binary())
}

// CompileSource compiles Vyper source text. The resulting contract is keyed by VyperMainSourceName.
func (v *VyperCompilationConfig) CompileSource(source string) (*types.Compilation, error) {
	return v.compile([]vyperSourceUnit{{
		key:      VyperMainSourceName,
		relPath:  VyperMainSourceName,
		contents: []byte(source),
	}})
}

// CompileFiles reads the provided Vyper files in order and compiles them as one batch. Contracts are keyed by the
// paths exactly as provided.
func (v *VyperCompilationConfig) CompileFiles(paths []string) (*types.Compilation, error) {
	units := make([]vyperSourceUnit, 0, len(paths))
	for i, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read vyper source '%s'", path)
		}

		// Each file gets its own directory so that base names are preserved without colliding
		units = append(units, vyperSourceUnit{
			key:      path,
			relPath:  filepath.Join(strconv.Itoa(i), filepath.Base(path)),
			contents: contents,
		})
	}
	return v.compile(units)
}

// compile writes the source units into a temporary directory, runs vyper over them and normalizes its output.
func (v *VyperCompilationConfig) compile(units []vyperSourceUnit) (*types.Compilation, error) {
	workDir, err := os.MkdirTemp("", "cheatsheet-vyper-")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer os.RemoveAll(workDir)

	// Map the paths vyper will report back to the caller's keys
	keysByPath := make(map[string]string, len(units))
	args := append([]string{}, v.Args...)
	args = append(args, "-f", "combined_json")
	for _, unit := range units {
		fullPath := filepath.Join(workDir, unit.relPath)
		if err = utils.MakeDirectory(filepath.Dir(fullPath)); err != nil {
			return nil, err
		}
		if err = os.WriteFile(fullPath, unit.contents, 0644); err != nil {
			return nil, errors.WithStack(err)
		}
		keysByPath[filepath.ToSlash(unit.relPath)] = unit.key
		args = append(args, unit.relPath)
	}

	cmd := exec.Command(v.binary(), args...)
	cmd.Dir = workDir
	cmdStdout, _, cmdCombined, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return nil, &CompilerError{
			Platform: v.Platform(),
			Command:  cmd.String(),
			Output:   string(cmdCombined),
			Err:      err,
		}
	}

	return v.parseCombinedJSON(cmdStdout, keysByPath)
}

// parseCombinedJSON converts vyper's combined_json output into a Compilation, mapping reported source paths to keys.
func (v *VyperCompilationConfig) parseCombinedJSON(output []byte, keysByPath map[string]string) (*types.Compilation, error) {
	var results map[string]json.RawMessage
	if err := json.Unmarshal(output, &results); err != nil {
		return nil, errors.Wrap(err, "could not parse vyper combined json output")
	}

	compilation := types.NewCompilation(v.Platform(), "")
	for path, result := range results {
		// The compiler version is reported alongside the sources
		if path == "version" {
			var compilerVersion string
			if err := json.Unmarshal(result, &compilerVersion); err == nil {
				compilation.CompilerVersion = compilerVersion
			}
			continue
		}

		var output vyperContractOutput
		if err := json.Unmarshal(result, &output); err != nil {
			return nil, errors.Wrapf(err, "could not parse vyper output for '%s'", path)
		}

		key, ok := keysByPath[filepath.ToSlash(filepath.Clean(path))]
		if !ok {
			key = path
		}

		compiledContract, err := types.NewCompiledContract(output.Abi, output.Bytecode, output.BytecodeRuntime)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse compiled contract '%s'", key)
		}
		compilation.Contracts[key] = *compiledContract
	}

	return compilation, nil
}
