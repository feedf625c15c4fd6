// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     logviewer
// Description: Main Bubbletea model for the intrusion log view
// Author:      Mike Stoffels
// Created:     2026-09-18
// License:     MIT
// ============================================================================

package logviewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/pkg/core/version"
)

// Config holds LogViewer configuration
type Config struct {
	// APIURL is shown in the status bar
	APIURL string
}

// filterModes is the cycle order of the filter field selector
var filterModes = []monitor.FilterMode{
	monitor.FilterByPort,
	monitor.FilterBySourceIP,
	monitor.FilterByType,
}

// Model is the main Bubbletea model for LogViewer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool
	state   monitor.ViewState

	// Filter editing
	editing    bool
	editMode   monitor.FilterMode
	inputError string

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	input    textinput.Model
	help     help.Model
	keys     keyMap

	// Backend
	monitor *monitor.LogMonitor
	done    <-chan struct{}
	apiURL  string
}

// New creates a new LogViewer model for a started or idle monitor.
// done stops the background update listener when closed.
func New(mon *monitor.LogMonitor, cfg Config, done <-chan struct{}) Model {
	// Setup spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "Wert"
	ti.CharLimit = 64
	ti.Width = 30

	return Model{
		loading:  true,
		state:    mon.State(),
		editMode: monitor.FilterByPort,
		spinner:  sp,
		input:    ti,
		help:     help.New(),
		keys:     defaultKeyMap(),
		monitor:  mon,
		done:     done,
		apiURL:   cfg.APIURL,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForUpdate(m.monitor.Updates(), m.done),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		headerHeight := 4 // Title + filter bar
		footerHeight := 5 // Error/input line + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		if m.state.AutoScroll {
			m.viewport.GotoBottom()
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case stateChangedMsg:
		m.refresh()
		cmds = append(cmds, waitForUpdate(m.monitor.Updates(), m.done))
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// refresh pulls the monitor state and follows the newest record if requested
func (m *Model) refresh() {
	m.state = m.monitor.State()
	if m.state.Version > 0 || m.state.Err != "" {
		m.loading = false
	}
	m.updateViewportContent()
	if m.monitor.ShouldScroll(m.state.Version) {
		m.viewport.GotoBottom()
	}
}

// handleKeyPress handles keyboard input outside of filter editing
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.monitor.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.AutoScroll):
		if m.monitor.ToggleAutoScroll() {
			m.viewport.GotoBottom()
		}
		m.state = m.monitor.State()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.editing = true
		m.inputError = ""
		if q := m.monitor.Query(); !q.IsAll() {
			m.editMode = q.Mode
			m.input.SetValue(q.Value)
		} else {
			m.input.SetValue("")
		}
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		if err := m.monitor.SubmitFilter(monitor.FilterNone, ""); err == nil {
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		// jumping to the end resumes following the stream
		m.monitor.SetAutoScroll(true)
		m.state = m.monitor.State()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Scrolling keys go to the viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleEditKey handles keyboard input while the filter input is focused
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.monitor.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.CycleField):
		m.editMode = nextMode(m.editMode)
		m.inputError = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if err := m.monitor.SubmitFilter(m.editMode, m.input.Value()); err != nil {
			m.inputError = monitor.DisplayMessage(err)
			return m, nil
		}
		m.stopEditing()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.inputError = ""
	m.input.Blur()
}

func nextMode(current monitor.FilterMode) monitor.FilterMode {
	for i, mode := range filterModes {
		if mode == current {
			return filterModes[(i+1)%len(filterModes)]
		}
	}
	return filterModes[0]
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Intrusion-Logs..."
	}

	var b strings.Builder

	// Header with logo
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Filter bar
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	// Log viewport
	b.WriteString(m.renderLogArea())
	b.WriteString("\n")

	// Error banner or filter input
	b.WriteString(m.renderMessageLine())
	b.WriteString("\n")

	// Status bar
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	// Help bar
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and polling status
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)

	var status string
	if m.state.Polling == monitor.StateActive {
		status = StatusOnlineStyle.Render(IconActive + "LIVE")
	} else {
		status = StatusPausedStyle.Render(IconPaused + "PAUSIERT")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		status,
		strings.Repeat(" ", 3),
		SubHeaderStyle.Render(m.apiURL),
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the active query and buffer fill
func (m Model) renderFilterBar() string {
	q := m.state.Query
	filters := []string{
		RenderFilterStatus("Alle", q.IsAll()),
		RenderFilterStatus(filterLabel(monitor.FilterByPort, q), q.Mode == monitor.FilterByPort),
		RenderFilterStatus(filterLabel(monitor.FilterBySourceIP, q), q.Mode == monitor.FilterBySourceIP),
		RenderFilterStatus(filterLabel(monitor.FilterByType, q), q.Mode == monitor.FilterByType),
	}

	filterStr := IconFilter + strings.Join(filters, "  ")
	countStr := HelpDescStyle.Render(fmt.Sprintf("[%d/%d Logs]", len(m.state.Rows), m.monitor.Capacity()))

	// Auto-scroll indicator
	scrollStr := "  " + RenderFilterStatus("[Auto-Scroll]", m.state.AutoScroll)

	content := filterStr + "  " + countStr + scrollStr

	return FilterBarStyle.Width(m.width - 2).Render(content)
}

func filterLabel(mode monitor.FilterMode, active monitor.Query) string {
	name := modeLabel(mode)
	if active.Mode == mode {
		return name + "=" + active.Value
	}
	return name
}

func modeLabel(mode monitor.FilterMode) string {
	switch mode {
	case monitor.FilterByPort:
		return "Port"
	case monitor.FilterBySourceIP:
		return "Quell-IP"
	case monitor.FilterByType:
		return "Typ"
	default:
		return "Alle"
	}
}

// renderLogArea renders the main log viewport
func (m Model) renderLogArea() string {
	style := LogPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2)
	return style.Render(m.viewport.View())
}

// renderMessageLine renders the filter input, or the fetch error banner
func (m Model) renderMessageLine() string {
	if m.editing {
		line := LogTypeStyle.Render(modeLabel(m.editMode)+": ") + m.input.View()
		if m.inputError != "" {
			line += "  " + InputErrorStyle.Render(m.inputError)
		}
		return line
	}
	if m.state.Err != "" {
		return ErrorBannerStyle.Render(m.state.Err)
	}
	return ""
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	// Left: query info
	leftPart := HelpDescStyle.Render("Abfrage: " + m.state.Query.String())

	// Center: Version
	centerPart := HelpDescStyle.Render("v" + version.LogViewer)

	// Right: polling status
	var rightPart string
	switch {
	case m.loading:
		rightPart = m.spinner.View() + " Lade..."
	case m.state.Polling == monitor.StateActive:
		rightPart = StatusOnlineStyle.Render(fmt.Sprintf("alle %s", m.monitor.Interval()))
	default:
		rightPart = StatusPausedStyle.Render("angehalten")
	}

	// Calculate padding
	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	totalLen := leftLen + centerLen + rightLen
	availableSpace := m.width - totalLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	if m.editing {
		return m.help.ShortHelpView(m.keys.editHelp())
	}
	return m.help.View(m.keys)
}

// updateViewportContent updates the viewport with the projected rows
func (m *Model) updateViewportContent() {
	var content strings.Builder

	if len(m.state.Rows) == 0 {
		content.WriteString(HelpDescStyle.Render("Keine Einträge"))
	}

	for _, row := range m.state.Rows {
		content.WriteString(renderRow(row))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderRow formats one row: TIME [SEVERITY] TYPE SOURCE -> DESTINATION:PORT/PROTOCOL
func renderRow(row monitor.Row) string {
	timeStr := LogTimestampStyle.Render(row.Time)
	badge := RenderSeverityBadge(row)
	typeStr := LogTypeStyle.Render(fmt.Sprintf("%-16s", truncateString(row.Type, 16)))
	route := LogRouteStyle.Render(fmt.Sprintf("%s -> %s:%s/%s", row.Source, row.Destination, row.Port, row.Protocol))
	return fmt.Sprintf("%s %s %s %s", timeStr, badge, typeStr, route)
}

// truncateString shortens s to max runes, marking the cut with "~"
func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "~"
}

// Run starts the monitor and the LogViewer TUI. The monitor is stopped on
// every exit path.
func Run(ctx context.Context, mon *monitor.LogMonitor, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer mon.Stop()

	if err := mon.Start(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(New(mon, cfg, ctx.Done()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
