package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/coalcarbon/internal/emissions"
)

// CalculatorState is the state of the interactive calculator.
type CalculatorState int

const (
	// CalculatorStateBrowsing means a row is focused but not being edited.
	CalculatorStateBrowsing CalculatorState = iota
	// CalculatorStateEditing means the focused row's value is being typed.
	CalculatorStateEditing
	// CalculatorStateQuitting means the program is exiting.
	CalculatorStateQuitting
)

// Column widths of the input table.
const (
	activityWidth = 14
	quantityWidth = 14
	factorWidth   = 18
)

// InputRow is one editable activity quantity.
type InputRow struct {
	Activity emissions.Activity
	Value    string
}

// CalculatorModel edits the four activity quantities and recomputes the
// results and gap analysis after every committed edit.
type CalculatorModel struct {
	rows       []InputRow
	focusedRow int
	editBuffer string
	state      CalculatorState

	target        float64
	sequestration float64

	results *emissions.Results
	gap     emissions.GapAnalysis
	err     error

	// onCalculate is told about every recalculation.
	onCalculate func(error)
}

// NewCalculatorModel starts from inputs with the given gap parameters.
func NewCalculatorModel(inputs emissions.Inputs, target, sequestration float64) *CalculatorModel {
	m := &CalculatorModel{
		target:        target,
		sequestration: sequestration,
	}
	for _, a := range emissions.Activities() {
		m.rows = append(m.rows, InputRow{
			Activity: a,
			Value:    strconv.FormatFloat(inputs.Quantity(a), 'f', -1, 64),
		})
	}
	m.recalculate()
	return m
}

// OnCalculate registers fn to be called with the outcome of every recalculation.
func (m *CalculatorModel) OnCalculate(fn func(error)) {
	m.onCalculate = fn
}

// Inputs parses the current rows. Unparseable values are reported as errors.
func (m *CalculatorModel) Inputs() (emissions.Inputs, error) {
	var in emissions.Inputs
	for _, row := range m.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row.Value), 64)
		if err != nil {
			return in, fmt.Errorf("%w: %s is not a number", emissions.ErrValidation, row.Activity)
		}
		switch row.Activity {
		case emissions.ActivityDiesel:
			in.Diesel = v
		case emissions.ActivityElectricity:
			in.Electricity = v
		case emissions.ActivityExplosives:
			in.Explosives = v
		case emissions.ActivityMethane:
			in.Methane = v
		}
	}
	return in, nil
}

// Results returns the last successful calculation.
func (m *CalculatorModel) Results() *emissions.Results {
	return m.results
}

// Gap returns the gap analysis of the last successful calculation.
func (m *CalculatorModel) Gap() emissions.GapAnalysis {
	return m.gap
}

// Err returns the error of the last calculation, if any.
func (m *CalculatorModel) Err() error {
	return m.err
}

// recalculate keeps the previous results when the new inputs are invalid.
func (m *CalculatorModel) recalculate() {
	in, err := m.Inputs()
	if err == nil {
		var res *emissions.Results
		res, err = emissions.Calculate(in)
		if err == nil {
			m.results = res
			m.gap = emissions.CalculateGap(res.Total, m.target, m.sequestration)
		}
	}
	m.err = err
	if m.onCalculate != nil {
		m.onCalculate(err)
	}
}

// Init implements tea.Model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.state == CalculatorStateEditing {
		return m.handleEditKey(key)
	}

	switch key.Type { //nolint:exhaustive // Navigation keys only.
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit
	case tea.KeyRunes:
		if string(key.Runes) == "q" {
			m.state = CalculatorStateQuitting
			return m, tea.Quit
		}
	case tea.KeyUp:
		if m.focusedRow > 0 {
			m.focusedRow--
		}
	case tea.KeyDown:
		if m.focusedRow < len(m.rows)-1 {
			m.focusedRow++
		}
	case tea.KeyEnter:
		m.state = CalculatorStateEditing
		m.editBuffer = m.rows[m.focusedRow].Value
	}
	return m, nil
}

func (m *CalculatorModel) handleEditKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type { //nolint:exhaustive // Text editing keys only.
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit
	case tea.KeyEnter:
		m.rows[m.focusedRow].Value = m.editBuffer
		m.state = CalculatorStateBrowsing
		m.recalculate()
	case tea.KeyEsc:
		m.state = CalculatorStateBrowsing
		m.editBuffer = ""
	case tea.KeyBackspace:
		runes := []rune(m.editBuffer)
		if len(runes) > 0 {
			m.editBuffer = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		m.editBuffer += string(key.Runes)
	}
	return m, nil
}

// View implements tea.Model.
func (m *CalculatorModel) View() string {
	if m.state == CalculatorStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Carbon Emission Calculator"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %s",
		activityWidth, "Activity", quantityWidth, "Quantity", factorWidth, "Factor", "Emission")))
	b.WriteString("\n")

	for i, row := range m.rows {
		cursor := "  "
		value := row.Value
		if i == m.focusedRow {
			cursor = IconArrowRight + " "
			if m.state == CalculatorStateEditing {
				cursor = "> "
				value = m.editBuffer + "▌"
			}
		}
		emission := "-"
		if m.results != nil {
			emission = emissions.FormatEmission(m.results.Emission(row.Activity), emissions.DefaultUnit)
		}
		factor := fmt.Sprintf("%s kg/%s", strconv.FormatFloat(row.Activity.Factor(), 'f', -1, 64), row.Activity.Unit())
		fmt.Fprintf(&b, "%s%-*s %-*s %-*s %s\n", cursor,
			activityWidth, row.Activity.Label(), quantityWidth, value, factorWidth, factor, emission)
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(CriticalStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	if m.results != nil {
		b.WriteString(RenderResultsSummary(m.results, m.gap))
		b.WriteString("\n")
	}

	b.WriteString(SubtleStyle.Render("↑/↓: select • enter: edit/commit • esc: cancel edit • q: quit"))
	return b.String()
}

// RenderResultsSummary renders the total, the per-source shares and the gap.
func RenderResultsSummary(res *emissions.Results, gap emissions.GapAnalysis) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Total Emissions: "))
	b.WriteString(ValueStyle.Render(emissions.FormatEmission(res.Total, emissions.DefaultUnit)))
	b.WriteString("\n")
	for _, item := range res.Breakdown {
		fmt.Fprintf(&b, "  %-*s %5.1f%%\n", activityWidth, item.Label, item.Percentage)
	}
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Gap: "))
	b.WriteString(renderGapStatus(gap))
	b.WriteString("\n")
	return b.String()
}

func renderGapStatus(gap emissions.GapAnalysis) string {
	text := fmt.Sprintf("%s (%.1f%%) %s", emissions.FormatEmission(gap.Gap, emissions.DefaultUnit), gap.GapPercentage, gap.Status)
	switch gap.Status {
	case emissions.StatusAbove:
		return CriticalStyle.Render(IconArrowUp + " " + text +
			fmt.Sprintf(", %.3f credits needed", gap.CarbonCreditsNeeded))
	case emissions.StatusBelow:
		return OKStyle.Render(IconArrowDown + " " + text)
	case emissions.StatusOnTarget:
	}
	return ValueStyle.Render(IconArrowRight + " " + text)
}
