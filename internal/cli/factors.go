package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/emissions"
)

// FactorRow describes one emission factor.
type FactorRow struct {
	Activity    string  `json:"activity" yaml:"activity"`
	Factor      float64 `json:"factor" yaml:"factor"`
	Unit        string  `json:"unit" yaml:"unit"`
	Description string  `json:"description" yaml:"description"`
}

// NewFactorsCmd creates the factors command.
func NewFactorsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the emission factors used by calculate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			rows := make([]FactorRow, 0, len(emissions.Activities()))
			for _, a := range emissions.Activities() {
				rows = append(rows, FactorRow{
					Activity:    a.Label(),
					Factor:      a.Factor(),
					Unit:        "kg CO2e/" + a.Unit(),
					Description: a.Description(),
				})
			}
			if format != config.OutputTable {
				return writeStructured(cmd.OutOrStdout(), format, rows)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "ACTIVITY\tFACTOR\tUNIT\tDESCRIPTION")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Activity, strconv.FormatFloat(r.Factor, 'f', -1, 64), r.Unit, r.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (table, json, yaml); default from config")
	return cmd
}
