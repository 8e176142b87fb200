package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show map list sidebar
	sidebarWidth       = 20 // Width of map list sidebar
	maxRuns            = 100
)

// HistoryModel browses stored bench runs, one map at a time.
type HistoryModel struct {
	maps        []registry.MapInfo
	mapCursor   int
	store       *storage.Store
	runs        []storage.BenchRun
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history browser starting at mapID, or at the
// first registered map when mapID is empty or unknown.
func NewHistoryModel(store *storage.Store, mapID string, width, height int) HistoryModel {
	maps := registry.List()
	if mapID != "" && !registry.Exists(mapID) {
		maps = append(maps, registry.MapInfo{ID: mapID, Title: mapID})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		maps:        maps,
		store:       store,
		keys:        DefaultListKeyMap(),
		help:        h,
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, info := range maps {
		if info.ID == mapID {
			m.mapCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.maps) > 0 {
		m.loadRuns(m.maps[m.mapCursor].ID)
	}
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Size", Width: 9},
		{Title: "Workers", Width: 7},
		{Title: "Frames", Width: 7},
		{Title: "ms/frame", Width: 9},
		{Title: "FPS", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads stored runs for the given map ID.
func (m *HistoryModel) loadRuns(mapID string) {
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(mapID, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats bench runs as table rows.
func RunRows(runs []storage.BenchRun) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.3f", float64(r.PerFrame().Microseconds())/1000),
			fmt.Sprintf("%.1f", r.FPS()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.History):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.maps)
				m.loadRuns(m.maps[m.mapCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor - 1 + len(m.maps)) % len(m.maps)
				m.loadRuns(m.maps[m.mapCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages (scrolling) to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "BENCH HISTORY"
	if len(m.maps) > 0 {
		title = fmt.Sprintf("BENCH HISTORY - %s", m.maps[m.mapCursor].Title)
	}
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.theme.Panel.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Panel.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, info := range m.maps {
		cursor := "  "
		style := m.theme.Item
		if i == m.mapCursor {
			cursor = "> "
			style = m.theme.SelectedItem
		}
		name := info.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}
	return m.theme.Panel.Width(sidebarWidth).Render(sidebar.String())
}

func (m HistoryModel) renderTabs() string {
	tabs := make([]string, len(m.maps))
	for i, info := range m.maps {
		if i == m.mapCursor {
			tabs[i] = m.theme.ActiveTab.Render(info.ID)
		} else {
			tabs[i] = m.theme.Tab.Render(" " + info.ID + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.maps) > 0 {
		line = fmt.Sprintf("< %s >", m.maps[m.mapCursor].ID)
	}
	return line
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.theme.Empty.Render("No bench runs recorded yet.\nRun `raycaster bench <map>` to add one.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// RunHistory runs the history browser.
// Returns true if user wants to go back to the menu, false if quitting.
func RunHistory(store *storage.Store, mapID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, mapID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
