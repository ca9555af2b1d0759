package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crytic/cheatsheet/config"
	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/crytic/cheatsheet/utils"
	"github.com/spf13/cobra"
)

// loadProjectConfig reads the project config named by the --config flag, or the default config file in the working
// directory. If the flag was not used and no default file exists, the default project config is returned.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(workingDirectory, config.DefaultProjectConfigFilename)
	}

	_, existenceError := os.Stat(configPath)
	if existenceError != nil {
		if configFlagUsed {
			return nil, existenceError
		}
		cmdLogger.Debug(fmt.Sprintf("Unable to find the config file at %v, using the default project configuration", configPath))
		return config.GetDefaultProjectConfig()
	}

	cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
	return config.ReadProjectConfigFromFile(configPath)
}

// configureLogging replaces the global logger with one following the project's logging config. If a log directory is
// set, structured logs are also written to a new file in it, which the returned function closes.
func configureLogging(loggingConfig config.LoggingConfig) (func(), error) {
	logging.GlobalLogger = logging.NewLogger(loggingConfig.Level, loggingConfig.EnableConsoleLogging)
	if loggingConfig.LogDirectory == "" {
		return func() {}, nil
	}

	fileName := fmt.Sprintf("log-%s.log", time.Now().Format("20060102-150405"))
	file, err := utils.CreateFile(loggingConfig.LogDirectory, fileName)
	if err != nil {
		return nil, err
	}
	logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	return func() {
		logging.GlobalLogger.RemoveWriter(file)
		_ = file.Close()
	}, nil
}
