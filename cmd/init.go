package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crytic/cheatsheet/config"
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/spf13/cobra"
)

// initCmd represents the command provider for init
var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Initializes a project configuration",
	Long:          `Writes the default project configuration, which can then be edited to point at specific solc and vyper binaries`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunInit,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addInitFlags()
	rootCmd.AddCommand(initCmd)
}

// cmdRunInit executes the init CLI command and updates the project configuration with any flags
func cmdRunInit(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if outputPath == "" {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the init command", err)
			return err
		}
		outputPath = filepath.Join(workingDirectory, config.DefaultProjectConfigFilename)
	}

	projectConfig, err := config.GetDefaultProjectConfig()
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if err = updateProjectConfigWithCompilerFlags(cmd, projectConfig); err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if _, err = os.Stat(outputPath); err == nil && !force {
		err = fmt.Errorf("the file %s already exists, use --force to overwrite it", outputPath)
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	if err = projectConfig.WriteToFile(outputPath); err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	if absoluteOutputPath, err := filepath.Abs(outputPath); err == nil {
		outputPath = absoluteOutputPath
	}
	cmdLogger.Info("Project configuration successfully output to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}
