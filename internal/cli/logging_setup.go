package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	config.SetLogger(logging.ComponentLogger(result.Logger, "config"))

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("trace_id", traceID).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging logs the command duration and closes the log file handle, if any.
func cleanupLogging(cmd *cobra.Command, started time.Time, logResult *logging.LogPathResult) error {
	logger.Debug().Ctx(cmd.Context()).
		Str("command", cmd.Name()).
		Dur("duration", time.Since(started)).
		Msg("command finished")

	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
