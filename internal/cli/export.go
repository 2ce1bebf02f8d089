package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/emissions"
	"github.com/rshade/coalcarbon/internal/export"
	"github.com/rshade/coalcarbon/internal/logging"
)

// formatAll selects every export format.
const formatAll = "all"

// ExportParams holds the flags of the export command.
type ExportParams struct {
	Source   string
	Format   string
	OutDir   string
	File     string
	DataPath string
	Stdout   bool
	NoGap    bool

	Inputs        emissions.Inputs
	Target        float64
	Sequestration float64
}

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var params ExportParams

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export calculator results or dashboard data as JSON, CSV, PDF or XML",
		Long: `Writes a report for the calculator results or the real-time dashboard.

Files are named carbon-emissions-<source>-<YYYY-MM-DD>.<ext> unless --file is
given. --format all writes every format concurrently. Exporting the dashboard
(--source realtime) requires a login.`,
		Example: `  coalcarbon export --diesel 100 --electricity 200 --format csv
  coalcarbon export --source calculator --format all --diesel 100 --out reports
  coalcarbon export --source realtime --format pdf
  coalcarbon export --diesel 100 --format json --stdout | jq .data.total`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeExport(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Source, "source", string(export.KindCalculator), "What to export (calculator, realtime)")
	cmd.Flags().StringVarP(&params.Format, "format", "f", "", "Report format (json, csv, pdf, xml, all); default from config")
	cmd.Flags().StringVar(&params.OutDir, "out", "", "Directory to write reports to; default from config")
	cmd.Flags().StringVar(&params.File, "file", "", "File name for a single-format export")
	cmd.Flags().StringVar(&params.DataPath, "data", "", "YAML file with dashboard series (realtime only)")
	cmd.Flags().BoolVar(&params.Stdout, "stdout", false, "Write a single-format report to stdout instead of a file")
	cmd.Flags().BoolVar(&params.NoGap, "no-gap", false, "Leave the gap analysis out of calculator reports")
	addActivityFlags(cmd, &params.Inputs)
	addGapFlags(cmd, &params.Target, &params.Sequestration)

	return cmd
}

// resolveFormats expands the format flag, defaulting to output.export_format.
func resolveFormats(flagValue string) ([]export.Format, error) {
	value := strings.ToLower(strings.TrimSpace(flagValue))
	if value == "" {
		value = strings.ToLower(config.GetGlobalConfig().Output.ExportFormat)
	}
	if value == formatAll {
		return export.AllFormats(), nil
	}
	f, err := export.ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return []export.Format{f}, nil
}

func executeExport(cmd *cobra.Command, params ExportParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	kind, err := export.ParseKind(params.Source)
	if err != nil {
		return validationError(err)
	}
	formats, err := resolveFormats(params.Format)
	if err != nil {
		return err
	}
	if len(formats) > 1 && (params.File != "" || params.Stdout) {
		return validationError(errors.New("--file and --stdout need a single --format"))
	}
	if err := export.ValidateFileName(params.File); err != nil {
		return validationError(fmt.Errorf("--file takes a bare file name, use --out for the directory: %w", err))
	}
	if params.DataPath != "" && kind != export.KindRealtime {
		return validationError(errors.New("--data only applies to --source realtime"))
	}

	data, err := buildExportData(cmd, kind, params)
	if err != nil {
		return err
	}

	exporter := export.New(
		export.WithLogger(logging.ComponentLogger(logger, "export")),
		export.WithObserver(recorder),
	)

	if params.Stdout {
		out, encErr := exporter.Encode(formats[0], data)
		if encErr != nil {
			return encErr
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	dir := params.OutDir
	if dir == "" {
		dir = config.GetGlobalConfig().Output.ExportDir
	}

	var paths []string
	if len(formats) == 1 {
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return fmt.Errorf("%w: creating %s: %w", export.ErrExport, dir, mkErr)
		}
		path, writeErr := exporter.WriteFile(dir, params.File, formats[0], data)
		if writeErr != nil {
			return writeErr
		}
		paths = []string{path}
	} else {
		paths, err = exporter.WriteFiles(ctx, dir, formats, data)
		if err != nil {
			return err
		}
	}

	for _, p := range paths {
		cmd.Printf("Exported %s\n", p)
	}
	log.Info().Ctx(ctx).Str("kind", string(kind)).Int("files", len(paths)).Msg("export complete")
	return nil
}

// buildExportData computes the calculator payload or loads the dashboard
// series, enforcing login for the latter.
func buildExportData(cmd *cobra.Command, kind export.Kind, params ExportParams) (*export.Data, error) {
	now := time.Now()

	if kind == export.KindRealtime {
		if _, err := requireLogin(cmd); err != nil {
			return nil, err
		}
		rt, err := dashboard.NewProvider(params.DataPath).Realtime(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("%w: loading dashboard data: %w", export.ErrExport, err)
		}
		return export.NewRealtimeData(rt, now), nil
	}

	results, err := emissions.Calculate(params.Inputs)
	recorder.ObserveCalculation(err)
	if err != nil {
		return nil, err
	}

	var gap *emissions.GapAnalysis
	if !params.NoGap {
		target, sequestration := gapParams(cmd, params.Target, params.Sequestration)
		g := emissions.CalculateGap(results.Total, target, sequestration)
		gap = &g
	}
	return export.NewCalculatorData(results, gap, now), nil
}
