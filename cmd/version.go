package cmd

import (
	"fmt"

	"github.com/crytic/cheatsheet/reference"
	"github.com/crytic/cheatsheet/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print the version and build information of cheatsheet, along with the solc and vyper
versions the reference is written for.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := reference.Load()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), version.GetInfo().String(ref.Versions.Solidity, ref.Versions.Vyper))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
