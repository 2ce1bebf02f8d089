package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/logging"
	"github.com/rshade/coalcarbon/internal/tui"
)

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	var (
		plain    bool
		dataPath string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the real-time emissions dashboard (login required)",
		Long: `Shows KPIs, daily and monthly trends, emission sources and prediction
accuracy. The series are sample data unless --data points at a YAML file
with the same shape.

On a terminal the dashboard is interactive; otherwise, or with --plain, it is
printed as text. --output json or yaml dumps the raw series.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			session, err := requireLogin(cmd)
			if err != nil {
				return err
			}

			rt, err := dashboard.NewProvider(dataPath).Realtime(ctx)
			if err != nil {
				return fmt.Errorf("loading dashboard data: %w", err)
			}
			log.Debug().Ctx(ctx).Int("days", len(rt.DailyData)).Str("user", session.User()).Msg("dashboard data loaded")

			if output != "" {
				format, fmtErr := resolveOutputFormat(output)
				if fmtErr != nil {
					return fmtErr
				}
				if format != config.OutputTable {
					return writeStructured(cmd.OutOrStdout(), format, rt)
				}
				plain = true
			}

			if tui.DetectOutputMode(plain) == tui.OutputModePlain {
				_, err = fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboardText(rt))
				return err
			}

			p := tea.NewProgram(tui.NewDashboardModel(rt, session.User()),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the dashboard as text")
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML file with dashboard series (default: built-in sample)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Dump the series as json or yaml")

	return cmd
}
