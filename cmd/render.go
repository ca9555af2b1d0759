package cmd

import (
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/crytic/cheatsheet/reference"
	"github.com/spf13/cobra"
)

// renderCmd represents the command provider for render
var renderCmd = &cobra.Command{
	Use:           "render",
	Short:         "Renders the reference page as HTML",
	Long:          `Renders the reference page as a single HTML document, printed to standard output unless --out is used`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunRender,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	renderCmd.Flags().String("out", "", OutFlagDescription)
	rootCmd.AddCommand(renderCmd)
}

// cmdRunRender executes the render CLI command
func cmdRunRender(cmd *cobra.Command, args []string) error {
	ref, err := reference.Load()
	if err != nil {
		cmdLogger.Error("Failed to run the render command", err)
		return err
	}

	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the render command", err)
		return err
	}
	if outputPath == "" {
		return reference.Render(cmd.OutOrStdout(), ref)
	}

	if err = reference.RenderToFile(ref, outputPath); err != nil {
		cmdLogger.Error("Failed to run the render command", err)
		return err
	}
	cmdLogger.Info("Reference page successfully output to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}
