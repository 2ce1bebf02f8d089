package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/emissions"
	"github.com/rshade/coalcarbon/internal/equivalency"
	"github.com/rshade/coalcarbon/internal/logging"
	"github.com/rshade/coalcarbon/internal/tui"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// CalculateParams holds the flags of the calculate command.
type CalculateParams struct {
	Inputs        emissions.Inputs
	Target        float64
	Sequestration float64
	Output        string
	Interactive   bool
}

// CalculationReport is the structured output of calculate.
type CalculationReport struct {
	Inputs      emissions.Inputs      `json:"inputs" yaml:"inputs"`
	Results     *emissions.Results    `json:"results" yaml:"results"`
	GapAnalysis emissions.GapAnalysis `json:"gapAnalysis" yaml:"gap_analysis"`

	Equivalencies *equivalency.Summary `json:"equivalencies,omitempty" yaml:"equivalencies,omitempty"`
}

// NewCalculateCmd creates the calculate command.
func NewCalculateCmd() *cobra.Command {
	var params CalculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate emissions from activity quantities",
		Long: `Multiplies each activity quantity by its emission factor, prints the
per-source breakdown and compares the total with the monthly target.

Target and sequestration default to the gap section of the configuration.`,
		Example: `  coalcarbon calculate --diesel 100 --electricity 200 --explosives 50 --methane 10
  coalcarbon calculate --diesel 100 --target 500 --sequestration 50 --output json
  coalcarbon calculate --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, params)
		},
	}

	addActivityFlags(cmd, &params.Inputs)
	addGapFlags(cmd, &params.Target, &params.Sequestration)
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "Output format (table, json, yaml); default from config")
	cmd.Flags().BoolVarP(&params.Interactive, "interactive", "i", false, "Edit the quantities in an interactive form")

	return cmd
}

// addActivityFlags registers one flag per activity.
func addActivityFlags(cmd *cobra.Command, in *emissions.Inputs) {
	cmd.Flags().Float64Var(&in.Diesel, "diesel", 0, "Diesel consumed (litres)")
	cmd.Flags().Float64Var(&in.Electricity, "electricity", 0, "Electricity consumed (kWh)")
	cmd.Flags().Float64Var(&in.Explosives, "explosives", 0, "Explosives used (kg)")
	cmd.Flags().Float64Var(&in.Methane, "methane", 0, "Methane released (tons)")
}

// addGapFlags registers --target and --sequestration.
func addGapFlags(cmd *cobra.Command, target, sequestration *float64) {
	cmd.Flags().Float64Var(target, "target", emissions.DefaultTarget, "Monthly emission target (kg CO2e); default from config")
	cmd.Flags().Float64Var(sequestration, "sequestration", emissions.DefaultSequestration,
		"Carbon sequestration capacity (kg CO2e); default from config")
}

// gapParams returns the flag values, falling back to the configuration for
// flags that were not set.
func gapParams(cmd *cobra.Command, target, sequestration float64) (float64, float64) {
	cfg := config.GetGlobalConfig()
	if !cmd.Flags().Changed("target") {
		target = cfg.Gap.Target
	}
	if !cmd.Flags().Changed("sequestration") {
		sequestration = cfg.Gap.Sequestration
	}
	return target, sequestration
}

func executeCalculate(cmd *cobra.Command, params CalculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	output, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}
	target, sequestration := gapParams(cmd, params.Target, params.Sequestration)

	if params.Interactive {
		if tui.DetectOutputMode(false) != tui.OutputModeInteractive {
			return validationError(errors.New("--interactive requires a terminal"))
		}
		return runInteractiveCalculator(cmd, params.Inputs, target, sequestration)
	}

	results, err := emissions.Calculate(params.Inputs)
	recorder.ObserveCalculation(err)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("calculation rejected")
		return err
	}
	gap := emissions.CalculateGap(results.Total, target, sequestration)
	log.Debug().Ctx(ctx).
		Float64("total", results.Total).
		Str("status", string(gap.Status)).
		Msg("calculation complete")

	if output == config.OutputTable {
		renderCalculation(cmd.OutOrStdout(), results, gap)
		return nil
	}
	report := CalculationReport{
		Inputs:      params.Inputs,
		Results:     results,
		GapAnalysis: gap,
	}
	if eq, eqErr := equivalency.Compute(results.Total); eqErr == nil && !eq.Empty {
		report.Equivalencies = &eq
	}
	return writeStructured(cmd.OutOrStdout(), output, report)
}

func runInteractiveCalculator(cmd *cobra.Command, in emissions.Inputs, target, sequestration float64) error {
	model := tui.NewCalculatorModel(in, target, sequestration)
	model.OnCalculate(recorder.ObserveCalculation)

	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running calculator: %w", err)
	}
	if res := model.Results(); res != nil {
		renderCalculation(cmd.OutOrStdout(), res, model.Gap())
	}
	return nil
}

// renderCalculation prints the total, breakdown and gap analysis as aligned text.
func renderCalculation(w io.Writer, results *emissions.Results, gap emissions.GapAnalysis) {
	unit := emissions.DefaultUnit
	fmt.Fprintf(w, "Total Emissions: %s", emissions.FormatEmission(results.Total, unit))
	if results.Total >= emissions.KgPerTon {
		fmt.Fprintf(w, " (%s tons)", emissions.FormatQuantity(results.Total/emissions.KgPerTon, 2)) //nolint:mnd // Two decimals.
	}
	fmt.Fprintln(w)
	if eq, err := equivalency.Compute(results.Total); err == nil && !eq.Empty {
		fmt.Fprintln(w, eq.Text)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tEMISSIONS\tSHARE")
	for _, item := range results.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", item.Label, emissions.FormatEmission(item.Value, unit), item.Percentage)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Gap Analysis")
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "  Target\t%s\n", emissions.FormatEmission(gap.TargetEmissions, unit))
	fmt.Fprintf(tw, "  Sequestration\t%s\n", emissions.FormatEmission(gap.CarbonSequestration, unit))
	fmt.Fprintf(tw, "  Gap\t%s\n", emissions.FormatQuantity(gap.Gap, 2))                //nolint:mnd // Two decimals.
	fmt.Fprintf(tw, "  Gap vs target\t%s%%\n", emissions.FormatQuantity(gap.GapPercentage, 1)) //nolint:mnd // One decimal.
	fmt.Fprintf(tw, "  Status\t%s\n", gap.Status)
	if gap.CarbonCreditsNeeded > 0 {
		fmt.Fprintf(tw, "  Carbon credits needed\t%.3f\n", gap.CarbonCreditsNeeded)
	}
	_ = tw.Flush()
}
