package cmd

import (
	"github.com/crytic/cheatsheet/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cmdLogger is the logger used by the cmd package. It logs to the console until a command configures the global logger.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true).NewSubLogger("module", logging.CLI_SERVICE)

var rootCmd = &cobra.Command{
	Use:   "cheatsheet",
	Short: "A verified Solidity & Vyper reference",
	Long: "cheatsheet renders a feature by feature Solidity & Vyper reference and verifies every code example in it " +
		"against the real solc and vyper toolchains",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
