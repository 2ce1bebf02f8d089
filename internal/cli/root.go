package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/logging"
	"github.com/rshade/coalcarbon/internal/metrics"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// recorder counts calculations, exports and logins for the current invocation.
var recorder = metrics.NewRecorder() //nolint:gochecknoglobals // One registry per process.

// NewRootCmd creates the root Cobra command for the coalcarbon CLI.
// It wires up logging, tracing, project config discovery and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
		started    time.Time
	)

	cmd := &cobra.Command{
		Use:     "coalcarbon",
		Short:   "Coal mine carbon emissions calculator and reporting",
		Long:    "coalcarbon: calculate CO2-equivalent emissions of coal-mining activities, analyze the gap to target and export reports",
		Version: ver,
		Example: rootCmdExample,
		// Errors are printed by main together with the exit code mapping.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cwd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, cwd)
			config.SetResolvedProjectDir(resolved)
			config.SetGlobalConfig(nil)

			started = time.Now()
			recorder = metrics.NewRecorder()
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, started, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .coalcarbon/config.yaml (default: search upward from the working directory)")

	cmd.AddCommand(
		NewCalculateCmd(), NewFactorsCmd(), NewExportCmd(), NewDashboardCmd(),
		NewLoginCmd(), NewLogoutCmd(), NewWhoamiCmd(), newConfigCmd(),
	)
	flushMetricsAfterRun(cmd)

	return cmd
}

// flushMetricsAfterRun wraps every RunE below cmd so the metrics textfile is
// written whether or not the command failed.
func flushMetricsAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		flushMetricsAfterRun(sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		path := config.GetGlobalConfig().Metrics.Textfile
		if werr := recorder.WriteTextfile(path); werr != nil {
			logger.Warn().Err(werr).Str("path", path).Msg("could not write metrics textfile")
		}
		return err
	}
}

const rootCmdExample = `  # Calculate emissions for a month of operations
  coalcarbon calculate --diesel 12000 --electricity 45000 --explosives 800 --methane 3.5

  # Compare against a custom target and sequestration capacity
  coalcarbon calculate --diesel 12000 --target 60000 --sequestration 5000 --output json

  # Export calculator results in every format
  coalcarbon export --source calculator --format all --diesel 12000 --out reports

  # Sign in and open the real-time dashboard
  coalcarbon login
  coalcarbon dashboard

  # Initialize configuration
  coalcarbon config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigShowCmd(), NewConfigGetCmd(),
		NewConfigSetCmd(), NewConfigCredentialsCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
