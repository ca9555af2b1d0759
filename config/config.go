// Package config describes the JSON project configuration of the cheatsheet CLI.
package config

import (
	"encoding/json"
	"os"

	"github.com/crytic/cheatsheet/chain"
	"github.com/crytic/cheatsheet/compilation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultProjectConfigFilename is the config file the CLI looks for in the working directory.
const DefaultProjectConfigFilename = "cheatsheet.json"

// ProjectConfig describes every option of a verification run.
type ProjectConfig struct {
	// Compilation describes the toolchains used to compile code examples.
	Compilation CompilationConfig `json:"compilation"`

	// Ledger describes the chain.TestLedger examples are deployed to.
	Ledger chain.TestLedgerConfig `json:"ledger"`

	// Logging describes the logging options.
	Logging LoggingConfig `json:"logging"`
}

// CompilationConfig describes the compilation platform of each language.
type CompilationConfig struct {
	// Solidity describes the platform used to compile Solidity examples.
	Solidity *compilation.CompilationConfig `json:"solidity"`

	// Vyper describes the platform used to compile Vyper examples.
	Vyper *compilation.CompilationConfig `json:"vyper"`

	// CacheDirectory is where compiled artifacts are cached between runs. If the string is empty, compilations are
	// not cached.
	CacheDirectory string `json:"cacheDirectory"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// EnableConsoleLogging describes whether console logging is enabled
	EnableConsoleLogging bool `json:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty, then
	// no log files are kept
	LogDirectory string `json:"logDirectory"`
}

// GetDefaultProjectConfig obtains a default configuration: solc and vyper from the PATH, no artifact cache and info
// level console logging.
func GetDefaultProjectConfig() (*ProjectConfig, error) {
	solidity, err := compilation.NewCompilationConfig("solc")
	if err != nil {
		return nil, err
	}
	vyper, err := compilation.NewCompilationConfig("vyper")
	if err != nil {
		return nil, err
	}

	return &ProjectConfig{
		Compilation: CompilationConfig{
			Solidity: solidity,
			Vyper:    vyper,
		},
		Ledger: *chain.DefaultTestLedgerConfig(),
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			EnableConsoleLogging: true,
			LogDirectory:         "",
		},
	}, nil
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Options missing from the
// file keep their default values.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	projectConfig, err := GetDefaultProjectConfig()
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse project config '%s'", path)
	}
	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
func (p *ProjectConfig) Validate() error {
	if p.Compilation.Solidity == nil || p.Compilation.Vyper == nil {
		return errors.New("project config must describe a compilation platform for both solidity and vyper")
	}
	if err := p.Compilation.Solidity.Validate(); err != nil {
		return errors.Wrap(err, "invalid solidity compilation config")
	}
	if err := p.Compilation.Vyper.Validate(); err != nil {
		return errors.Wrap(err, "invalid vyper compilation config")
	}

	if err := p.Ledger.Validate(); err != nil {
		return err
	}

	// Verify that the log level is one zerolog knows
	if p.Logging.Level < zerolog.TraceLevel || p.Logging.Level > zerolog.Disabled {
		return errors.Errorf("invalid log level %d", p.Logging.Level)
	}
	return nil
}

// NewToolchains creates the compilation toolchains described by the config. The caller must Close them.
func (p *ProjectConfig) NewToolchains() (*compilation.Toolchains, error) {
	return compilation.NewToolchains(p.Compilation.Solidity, p.Compilation.Vyper, p.Compilation.CacheDirectory)
}
