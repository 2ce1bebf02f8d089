package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/coalcarbon/internal/dashboard"
)

// DashboardTab identifies a dashboard panel.
type DashboardTab int

const (
	// TabKPI shows the KPI cards and daily averages.
	TabKPI DashboardTab = iota
	// TabDaily shows actual, predicted and target per day.
	TabDaily
	// TabMonthly shows emissions and credits per month.
	TabMonthly
	// TabSources shows the share of each emission source.
	TabSources
	// TabAccuracy compares actual and predicted weekly values.
	TabAccuracy

	tabCount
)

// String returns the tab title.
func (t DashboardTab) String() string {
	switch t {
	case TabKPI:
		return "KPI"
	case TabDaily:
		return "Daily"
	case TabMonthly:
		return "Monthly"
	case TabSources:
		return "Sources"
	case TabAccuracy:
		return "Accuracy"
	case tabCount:
	}
	return "Unknown"
}

// Lines used by the header, tabs, box border and help text.
const (
	chromeLines    = 9
	minTableHeight = 3
)

// DashboardModel is the Bubble Tea model for the real-time dashboard.
type DashboardModel struct {
	data   *dashboard.RealtimeData
	user   string
	tab    DashboardTab
	tables map[DashboardTab]table.Model

	width    int
	height   int
	quitting bool
}

// NewDashboardModel builds the dashboard for rt. user is shown in the header.
func NewDashboardModel(rt *dashboard.RealtimeData, user string) *DashboardModel {
	if rt == nil {
		rt = &dashboard.RealtimeData{}
	}
	m := &DashboardModel{
		data:   rt,
		user:   user,
		tab:    TabKPI,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.rebuildTables()
	return m
}

func (m *DashboardModel) rebuildTables() {
	h := tableHeight
	if avail := m.height - chromeLines; avail < h {
		h = max(avail, minTableHeight)
	}
	m.tables = map[DashboardTab]table.Model{
		TabDaily:    newTable(dailySpec(m.data), h),
		TabMonthly:  newTable(monthlySpec(m.data), h),
		TabSources:  newTable(sourcesSpec(m.data), h),
		TabAccuracy: newTable(accuracySpec(m.data), h),
	}
}

// Tab returns the active tab.
func (m *DashboardModel) Tab() DashboardTab {
	return m.tab
}

// Init implements tea.Model.
func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTables()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "1", "2", "3", "4", "5":
			m.tab = DashboardTab(msg.String()[0] - '1')
			return m, nil
		}
	}

	t, ok := m.tables[m.tab]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	t, cmd = t.Update(msg)
	m.tables[m.tab] = t
	return m, cmd
}

// View implements tea.Model.
func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	header := TitleStyle.Render("Real-time Carbon Emissions Dashboard")
	if m.user != "" {
		header += "  " + SubtleStyle.Render("signed in as "+m.user)
	}

	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		label := DashboardTab(t).String()
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}

	var body string
	switch m.tab {
	case TabKPI:
		body = RenderStats(m.data)
	case TabSources:
		body = m.tables[TabSources].View() + "\n\n" + RenderSourceBars(m.data.SourceData)
	case TabDaily, TabMonthly, TabAccuracy:
		body = m.tables[m.tab].View()
	case tabCount:
	}

	help := SubtleStyle.Render("tab/shift+tab: switch panel • ↑/↓: scroll • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		strings.Join(tabs, " "),
		"",
		BoxStyle.Width(max(m.width-borderPadding, barWidth)).Render(body),
		help,
	)
}
