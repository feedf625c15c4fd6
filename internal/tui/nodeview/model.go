// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     nodeview
// Description: Bubbletea model for node CPU, memory and disk usage
// Author:      Mike Stoffels
// Created:     2026-09-19
// License:     MIT
// ============================================================================

package nodeview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/wachturm/internal/monitor"
)

type stateChangedMsg struct{}

func waitForUpdate(updates <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-updates:
			return stateChangedMsg{}
		case <-done:
			return nil
		}
	}
}

var (
	pauseKey = key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "Pause"))
	quitKey  = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Beenden"))
)

// Model shows the latest node sample as bars and the history as a table
type Model struct {
	width   int
	state   monitor.NodeState
	monitor *monitor.NodeMonitor
	done    <-chan struct{}
	apiURL  string
}

// New creates the node view model
func New(mon *monitor.NodeMonitor, apiURL string, done <-chan struct{}) Model {
	return Model{
		width:   80,
		state:   mon.State(),
		monitor: mon,
		done:    done,
		apiURL:  apiURL,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.monitor.Updates(), m.done)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			m.monitor.Stop()
			return m, tea.Quit
		case key.Matches(msg, pauseKey):
			m.monitor.TogglePause()
			m.state = m.monitor.State()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case stateChangedMsg:
		m.state = m.monitor.State()
		return m, waitForUpdate(m.monitor.Updates(), m.done)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	status := LiveStyle.Render("● LIVE")
	if m.state.Polling != monitor.StateActive {
		status = PausedStyle.Render("‖ PAUSIERT")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render("Wachturm Knoten"), "   ", status, "   ", MutedStyle.Render(m.apiURL)))
	b.WriteString("\n\n")

	barWidth := m.width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	if len(m.state.Samples) == 0 {
		b.WriteString(PanelStyle.Render(MutedStyle.Render("Warte auf Daten...")))
	} else {
		latest := m.state.Samples[len(m.state.Samples)-1]
		var cpu []float64
		for _, s := range m.state.Samples {
			cpu = append(cpu, s.CPUUsage)
		}

		bars := strings.Join([]string{
			usageLine("CPU", latest.CPUUsage, barWidth),
			usageLine("Speicher", latest.MemoryUsage, barWidth),
			usageLine("Platte", latest.DiskUsage, barWidth),
			LabelStyle.Render("Verlauf") + " " + Sparkline(cpu),
		}, "\n")
		b.WriteString(PanelStyle.Render(bars))
		b.WriteString("\n")
		b.WriteString(m.renderHistory())
	}
	b.WriteString("\n")

	if m.state.Err != "" {
		b.WriteString(ErrorStyle.Render(m.state.Err))
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("p Pause  q Beenden  ·  alle %s", m.monitor.Interval())))
	return b.String()
}

func usageLine(label string, pct float64, width int) string {
	return fmt.Sprintf("%s %s %5.1f%%", LabelStyle.Render(label), RenderBar(pct, width), pct)
}

// renderHistory lists the retained samples, newest last
func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%-10s %8s %8s %8s", "Zeit", "CPU", "Speicher", "Platte")))
	for _, s := range m.state.Samples {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-10s %7.1f%% %7.1f%% %7.1f%%",
			s.Timestamp.Format("15:04:05"), s.CPUUsage, s.MemoryUsage, s.DiskUsage))
	}
	return PanelStyle.Render(b.String())
}

// Run starts the node monitor and its TUI; the monitor is stopped on exit
func Run(ctx context.Context, mon *monitor.NodeMonitor, apiURL string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer mon.Stop()

	if err := mon.Start(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(New(mon, apiURL, ctx.Done()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
