package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/equivalency"
)

// barWidth is the width of a 100% source bar.
const barWidth = 40

// FormatTrend renders a KPI trend as " (+8%)" or " (-3%)". A nil trend is "".
func FormatTrend(trend *dashboard.Trend) string {
	if trend == nil {
		return ""
	}
	sign := "-"
	if trend.IsPositive {
		sign = "+"
	}
	return fmt.Sprintf(" (%s%s%%)", sign, num(trend.Value))
}

// RenderStats renders the KPI cards with trend arrows and the daily averages.
func RenderStats(rt *dashboard.RealtimeData) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("KEY METRICS"))
	b.WriteString("\n\n")

	for _, stat := range rt.Stats {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-20s", stat.Label)))
		b.WriteString(ValueStyle.Render(stat.Value))
		if stat.Trend != nil {
			style, icon := WarningStyle, IconArrowDown
			if stat.Trend.IsPositive {
				style, icon = OKStyle, IconArrowUp
			}
			b.WriteString(style.Render(FormatTrend(stat.Trend) + " " + icon))
		}
		b.WriteString("\n")
	}

	avg := rt.Averages()
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("DAILY AVERAGES"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%.0f tons\n", LabelStyle.Render(fmt.Sprintf("%-20s", "Actual")), avg.Actual)
	fmt.Fprintf(&b, "%s%.0f tons\n", LabelStyle.Render(fmt.Sprintf("%-20s", "Predicted")), avg.Predicted)
	fmt.Fprintf(&b, "%s%.0f tons\n", LabelStyle.Render(fmt.Sprintf("%-20s", "Target")), avg.Target)
	if eq, err := equivalency.FromQuantity(avg.Actual, "t"); err == nil && !eq.Empty {
		b.WriteString(SubtleStyle.Render(eq.Text + " per day"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSourceBars draws one horizontal bar per source, scaled to 100%.
func RenderSourceBars(sources []dashboard.SourceShare) string {
	var b strings.Builder
	for _, s := range sources {
		n := int(s.Value / 100 * barWidth)
		n = max(0, min(n, barWidth))
		fmt.Fprintf(&b, "%-16s %s %s%%\n", s.Name, strings.Repeat("█", n), num(s.Value))
	}
	return b.String()
}

// tableSpec is the column layout and rows of one dashboard tab.
type tableSpec struct {
	columns []table.Column
	rows    []table.Row
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dailySpec(rt *dashboard.RealtimeData) tableSpec {
	spec := tableSpec{columns: []table.Column{
		{Title: "Day", Width: 8},        //nolint:mnd // Column width.
		{Title: "Actual", Width: 10},    //nolint:mnd // Column width.
		{Title: "Predicted", Width: 10}, //nolint:mnd // Column width.
		{Title: "Target", Width: 10},    //nolint:mnd // Column width.
	}}
	for _, d := range rt.DailyData {
		spec.rows = append(spec.rows, table.Row{d.Day, num(d.Actual), num(d.Predicted), num(d.Target)})
	}
	return spec
}

func monthlySpec(rt *dashboard.RealtimeData) tableSpec {
	spec := tableSpec{columns: []table.Column{
		{Title: "Month", Width: 8},      //nolint:mnd // Column width.
		{Title: "Emissions", Width: 12}, //nolint:mnd // Column width.
		{Title: "Credits", Width: 12},   //nolint:mnd // Column width.
	}}
	for _, m := range rt.MonthlyData {
		spec.rows = append(spec.rows, table.Row{m.Month, num(m.Emissions), num(m.Credits)})
	}
	return spec
}

func sourcesSpec(rt *dashboard.RealtimeData) tableSpec {
	spec := tableSpec{columns: []table.Column{
		{Title: "Source", Width: 16},   //nolint:mnd // Column width.
		{Title: "Share (%)", Width: 10}, //nolint:mnd // Column width.
	}}
	for _, s := range rt.SourceData {
		spec.rows = append(spec.rows, table.Row{s.Name, num(s.Value)})
	}
	return spec
}

func accuracySpec(rt *dashboard.RealtimeData) tableSpec {
	spec := tableSpec{columns: []table.Column{
		{Title: "Week", Width: 6},       //nolint:mnd // Column width.
		{Title: "Actual", Width: 10},    //nolint:mnd // Column width.
		{Title: "Predicted", Width: 10}, //nolint:mnd // Column width.
		{Title: "Diff", Width: 8},       //nolint:mnd // Column width.
	}}
	for _, a := range rt.AccuracyData {
		spec.rows = append(spec.rows, table.Row{a.Week, num(a.Actual), num(a.Predicted), num(a.Diff)})
	}
	return spec
}

// newTable builds a focused bubbles table from spec.
func newTable(spec tableSpec, height int) table.Model {
	t := table.New(
		table.WithColumns(spec.columns),
		table.WithRows(spec.rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// renderPlainTable writes spec as left-aligned text columns.
func renderPlainTable(b *strings.Builder, title string, spec tableSpec) {
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	for _, c := range spec.columns {
		fmt.Fprintf(b, "%-*s", c.Width, c.Title)
	}
	b.WriteString("\n")
	for _, row := range spec.rows {
		for i, cell := range row {
			fmt.Fprintf(b, "%-*s", spec.columns[i].Width, cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// RenderDashboardText renders every dashboard section without interaction,
// for pipes and --plain.
func RenderDashboardText(rt *dashboard.RealtimeData) string {
	if rt == nil {
		return SubtleStyle.Render("No dashboard data.") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Real-time Carbon Emissions Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(RenderStats(rt))
	b.WriteString("\n")
	renderPlainTable(&b, "DAILY EMISSIONS (tons)", dailySpec(rt))
	renderPlainTable(&b, "MONTHLY TRENDS", monthlySpec(rt))
	b.WriteString(HeaderStyle.Render("EMISSION SOURCES"))
	b.WriteString("\n")
	b.WriteString(RenderSourceBars(rt.SourceData))
	b.WriteString("\n")
	renderPlainTable(&b, "PREDICTION ACCURACY", accuracySpec(rt))
	return b.String()
}
