package cmd

import (
	"github.com/crytic/cheatsheet/compilation"
	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/config"
	"github.com/crytic/cheatsheet/reference"
	"github.com/crytic/cheatsheet/snippet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// addCheckFlags adds the various flags for the check command
func addCheckFlags() {
	checkCmd.Flags().String("config", "", ConfigFlagDescription)
	checkCmd.Flags().StringSlice("language", []string{}, "only verify examples of these languages (solidity, vyper)")
	checkCmd.Flags().Bool("fail-fast", false, "stop at the first failing example")
	checkCmd.Flags().Bool("skip-versions", false, "do not verify the pinned compiler versions")
	checkCmd.Flags().String("cache-dir", "", "cache compiled artifacts in this directory")
	addCompilerFlags(checkCmd)
}

// addCompilerFlags adds the flags overriding compiler binaries to a command
func addCompilerFlags(cmd *cobra.Command) {
	cmd.Flags().String("solc", "", "path to the solc binary")
	cmd.Flags().String("vyper", "", "path to the vyper binary")
}

// updateProjectConfigWithCompilerFlags applies the --solc and --vyper flags to the compilation config.
func updateProjectConfigWithCompilerFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	if cmd.Flags().Changed("solc") {
		binary, err := cmd.Flags().GetString("solc")
		if err != nil {
			return err
		}
		updated, err := withCompilerBinary(projectConfig.Compilation.Solidity, binary)
		if err != nil {
			return err
		}
		projectConfig.Compilation.Solidity = updated
	}

	if cmd.Flags().Changed("vyper") {
		binary, err := cmd.Flags().GetString("vyper")
		if err != nil {
			return err
		}
		updated, err := withCompilerBinary(projectConfig.Compilation.Vyper, binary)
		if err != nil {
			return err
		}
		projectConfig.Compilation.Vyper = updated
	}
	return nil
}

// withCompilerBinary returns a copy of a compilation config invoking a different compiler binary.
func withCompilerBinary(compilationConfig *compilation.CompilationConfig, binary string) (*compilation.CompilationConfig, error) {
	platform, err := compilationConfig.GetPlatform()
	if err != nil {
		return nil, err
	}

	switch p := platform.(type) {
	case *platforms.SolcCompilationConfig:
		p.Binary = binary
	case *platforms.VyperCompilationConfig:
		p.Binary = binary
	default:
		return nil, errors.Errorf("the '%s' platform has no compiler binary", platform.Platform())
	}
	return compilation.NewCompilationConfigFromPlatform(platform)
}

// updateProjectConfigWithCheckFlags applies the check command flags to the project config.
func updateProjectConfigWithCheckFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	if cmd.Flags().Changed("cache-dir") {
		cacheDirectory, err := cmd.Flags().GetString("cache-dir")
		if err != nil {
			return err
		}
		projectConfig.Compilation.CacheDirectory = cacheDirectory
	}
	return updateProjectConfigWithCompilerFlags(cmd, projectConfig)
}

// verifyOptionsFromFlags builds the verification options from the check command flags.
func verifyOptionsFromFlags(cmd *cobra.Command) (reference.VerifyOptions, error) {
	var opts reference.VerifyOptions

	languages, err := cmd.Flags().GetStringSlice("language")
	if err != nil {
		return opts, err
	}
	for _, name := range languages {
		language, err := snippet.ParseLanguage(name)
		if err != nil {
			return opts, err
		}
		opts.Languages = append(opts.Languages, language)
	}

	if opts.FailFast, err = cmd.Flags().GetBool("fail-fast"); err != nil {
		return opts, err
	}
	if opts.SkipVersions, err = cmd.Flags().GetBool("skip-versions"); err != nil {
		return opts, err
	}
	return opts, nil
}
