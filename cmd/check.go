package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/crytic/cheatsheet/chain"
	"github.com/crytic/cheatsheet/cmd/exitcodes"
	"github.com/crytic/cheatsheet/harness"
	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/crytic/cheatsheet/reference"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// checkCmd represents the command provider for check
var checkCmd = &cobra.Command{
	Use:               "check",
	Short:             "Verifies every code example of the reference",
	Long:              `Compiles every checked code example of the reference with solc or vyper and deploys it to an in-memory chain`,
	Args:              cobra.NoArgs,
	ValidArgsFunction: cmdValidCheckArgs,
	RunE:              cmdRunCheck,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	addCheckFlags()
	rootCmd.AddCommand(checkCmd)
}

// cmdValidCheckArgs will return which flags are valid for dynamic completion for the check command
func cmdValidCheckArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdRunCheck executes the check CLI command
func cmdRunCheck(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the check command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	if err = updateProjectConfigWithCheckFlags(cmd, projectConfig); err != nil {
		cmdLogger.Error("Failed to run the check command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	if err = projectConfig.Validate(); err != nil {
		cmdLogger.Error("Invalid project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	opts, err := verifyOptionsFromFlags(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the check command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	closeLogs, err := configureLogging(projectConfig.Logging)
	if err != nil {
		cmdLogger.Error("Failed to configure logging", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer closeLogs()

	ref, err := reference.Load()
	if err != nil {
		cmdLogger.Error("Failed to load the reference", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	toolchains, err := projectConfig.NewToolchains()
	if err != nil {
		cmdLogger.Error("Failed to create the compilation toolchains", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer toolchains.Close()

	ledger, err := chain.NewTestLedger(&projectConfig.Ledger)
	if err != nil {
		cmdLogger.Error("Failed to create the test ledger", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer ledger.Close()
	runLogger := logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)
	ledger.Events.ContractDeployed.Subscribe(func(event chain.ContractDeployedEvent) {
		runLogger.Debug("Deployed ", event.Result.Address.Hex(), " using ", event.Result.GasUsed(), " gas")
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := reference.Verify(ctx, harness.NewChecker(toolchains, ledger), ref, opts)
	logReportSummary(report)

	if !report.Succeeded() {
		err = fmt.Errorf("%d of %d checks failed", report.Failed(), len(report.Results))
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCheckFailed)
	}
	if err = ctx.Err(); err != nil {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}
	return nil
}

// logReportSummary logs the outcome of a verification run, listing every failure.
func logReportSummary(report *reference.Report) {
	logger := logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)

	buffer := logging.NewLogBuffer()
	buffer.Append("Verification complete: ", colors.GreenBold, report.Passed(), " passed", colors.Reset, ", ")
	if report.Failed() > 0 {
		buffer.Append(colors.RedBold, report.Failed(), " failed", colors.Reset)
	} else {
		buffer.Append(report.Failed(), " failed")
	}
	buffer.Append(", ", report.Skipped, " skipped (", report.PassRate().StringFixed(2), "% pass rate)")
	logger.Info(buffer)

	for _, failure := range report.Failures() {
		logger.Error(colors.RedBold, colors.CROSS_MARK, " ", colors.Reset, failure.Section, " ", colors.LEFT_ARROW, " ",
			colors.Bold, failure.Feature, colors.Reset, " (", failure.Language.DisplayName(), ")", failure.Err)
	}
}
