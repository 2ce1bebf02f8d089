package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/emissions"
)

func sampleData(t *testing.T) *dashboard.RealtimeData {
	t.Helper()
	rt, err := dashboard.SampleProvider{}.Realtime(context.Background())
	require.NoError(t, err)
	return rt
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestFormatTrend(t *testing.T) {
	assert.Empty(t, FormatTrend(nil))
	assert.Equal(t, " (+12%)", FormatTrend(&dashboard.Trend{Value: 12, IsPositive: true}))
	assert.Equal(t, " (-3%)", FormatTrend(&dashboard.Trend{Value: 3}))
	assert.Equal(t, " (+2.5%)", FormatTrend(&dashboard.Trend{Value: 2.5, IsPositive: true}))
}

func TestRenderDashboardText(t *testing.T) {
	out := RenderDashboardText(sampleData(t))

	for _, want := range []string{
		"Real-time Carbon Emissions Dashboard",
		"Today's Emissions", "485 tons", "(-8%)",
		"Carbon Credits", "(+12%)",
		"DAILY EMISSIONS", "Mon", "Sun",
		"MONTHLY TRENDS", "12400", "8900",
		"EMISSION SOURCES", "Excavation", "45%",
		"PREDICTION ACCURACY", "W4", "-50",
	} {
		assert.Contains(t, out, want)
	}
	// Daily averages of the sample week: (450+520+480+510+560+380+350)/7 = 464.3
	assert.Contains(t, out, "464 tons")
	assert.Contains(t, out, "tree seedlings grown for 10 years or driving")

	assert.Contains(t, RenderDashboardText(nil), "No dashboard data")
}

func TestRenderSourceBars(t *testing.T) {
	out := RenderSourceBars([]dashboard.SourceShare{
		{Name: "Excavation", Value: 50},
		{Name: "Overflow", Value: 250},
	})
	lines := splitLines(out)
	require.Len(t, lines, 2)
	assert.Equal(t, barWidth/2, countRune(lines[0], '█'))
	assert.Equal(t, barWidth, countRune(lines[1], '█'), "bars are clamped")
}

func TestDashboardModel_TabCycling(t *testing.T) {
	m := NewDashboardModel(sampleData(t), "sneha")
	assert.Equal(t, TabKPI, m.Tab())

	for _, want := range []DashboardTab{TabDaily, TabMonthly, TabSources, TabAccuracy, TabKPI} {
		_, cmd := m.Update(key("tab"))
		assert.Nil(t, cmd)
		assert.Equal(t, want, m.Tab())
	}

	m.Update(key("shift+tab"))
	assert.Equal(t, TabAccuracy, m.Tab())

	m.Update(key("3"))
	assert.Equal(t, TabMonthly, m.Tab())
}

func TestDashboardModel_View(t *testing.T) {
	m := NewDashboardModel(sampleData(t), "sneha")

	view := m.View()
	assert.Contains(t, view, "signed in as sneha")
	assert.Contains(t, view, "Week Average")

	m.Update(key("2"))
	assert.Contains(t, m.View(), "Predicted")
	assert.Contains(t, m.View(), "Mon")

	m.Update(key("4"))
	assert.Contains(t, m.View(), "Transportation")

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
}

func TestDashboardModel_TableNavigation(t *testing.T) {
	m := NewDashboardModel(sampleData(t), "")
	m.Update(key("2"))

	assert.Equal(t, 0, m.tables[TabDaily].Cursor())
	m.Update(key("down"))
	assert.Equal(t, 1, m.tables[TabDaily].Cursor())
	m.Update(key("up"))
	assert.Equal(t, 0, m.tables[TabDaily].Cursor())
}

func TestDashboardModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c", "esc"} {
		m := NewDashboardModel(nil, "")
		_, cmd := m.Update(key(k))
		assert.True(t, isQuit(cmd), k)
		assert.Empty(t, m.View())
	}
}

func newTestSession() *auth.Session {
	return auth.NewSession(auth.DefaultVerifier(), nil, auth.WithLoginDelay(0))
}

func typeText(m *LoginModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestLoginModel_Success(t *testing.T) {
	session := newTestSession()
	m := NewLoginModel(context.Background(), session)

	typeText(m, auth.DemoUsername)
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.focus)

	typeText(m, auth.DemoPassword)
	assert.NotContains(t, m.View(), auth.DemoPassword, "password is masked")

	_, cmd = m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), MsgSigningIn)

	_, cmd = m.Update(cmd())
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Authenticated())
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, auth.DemoUsername, session.User())
}

func TestLoginModel_Failure(t *testing.T) {
	session := newTestSession()
	m := NewLoginModel(context.Background(), session)
	m.inputs[0].SetValue(auth.DemoUsername)
	m.setFocus(1)
	m.inputs[1].SetValue("wrong")

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())

	assert.Nil(t, cmd)
	assert.Equal(t, MsgInvalidCredentials, m.ErrorText())
	assert.Contains(t, m.View(), MsgInvalidCredentials)
	assert.False(t, m.Authenticated())
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, auth.DemoUsername, m.inputs[0].Value(), "fields are kept")
}

func TestLoginModel_Cancel(t *testing.T) {
	m := NewLoginModel(context.Background(), newTestSession())
	_, cmd := m.Update(key("esc"))
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Cancelled())
	assert.False(t, m.Authenticated())
}

func TestLoginModel_TabSwitchesField(t *testing.T) {
	m := NewLoginModel(context.Background(), newTestSession())
	m.Update(key("tab"))
	assert.Equal(t, 1, m.focus)
	m.Update(key("tab"))
	assert.Equal(t, 0, m.focus)
}

func TestCalculatorModel_InitialResults(t *testing.T) {
	m := NewCalculatorModel(emissions.Inputs{Diesel: 100, Electricity: 200, Explosives: 50, Methane: 10}, 1000, 200)

	require.NoError(t, m.Err())
	require.NotNil(t, m.Results())
	assert.InDelta(t, 808.0, m.Results().Total, 1e-9)
	assert.Equal(t, emissions.StatusBelow, m.Gap().Status)
	assert.Contains(t, m.View(), "Carbon Emission Calculator")
}

func TestCalculatorModel_EditRecalculates(t *testing.T) {
	var calls int
	m := NewCalculatorModel(emissions.Inputs{}, 1000, 200)
	m.OnCalculate(func(error) { calls++ })

	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("down"))
	assert.Equal(t, 3, m.focusedRow)

	m.Update(key("enter"))
	assert.Equal(t, CalculatorStateEditing, m.state)
	m.Update(key("backspace"))
	m.Update(key("100"))
	m.Update(key("enter"))

	assert.Equal(t, CalculatorStateBrowsing, m.state)
	assert.Equal(t, 1, calls)
	in, err := m.Inputs()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, in.Methane, 0)
	assert.InDelta(t, 2500.0, m.Results().Total, 1e-9)
	assert.Equal(t, emissions.StatusAbove, m.Gap().Status)
	assert.Contains(t, m.View(), "credits needed")
}

func TestCalculatorModel_InvalidEditKeepsResults(t *testing.T) {
	m := NewCalculatorModel(emissions.Inputs{Diesel: 10}, 1000, 200)
	before := m.Results()

	m.Update(key("enter"))
	m.Update(key("x"))
	m.Update(key("enter"))

	require.ErrorIs(t, m.Err(), emissions.ErrValidation)
	assert.Same(t, before, m.Results())
	assert.Contains(t, m.View(), "diesel is not a number")

	m.Update(key("enter"))
	m.Update(key("esc"))
	assert.Equal(t, CalculatorStateBrowsing, m.state)
}

func TestCalculatorModel_NegativeRejected(t *testing.T) {
	m := NewCalculatorModel(emissions.Inputs{}, 1000, 200)
	m.Update(key("enter"))
	m.Update(key("backspace"))
	m.Update(key("-5"))
	m.Update(key("enter"))
	require.ErrorIs(t, m.Err(), emissions.ErrValidation)
}

func TestCalculatorModel_Quit(t *testing.T) {
	m := NewCalculatorModel(emissions.Inputs{}, 1000, 200)
	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}
