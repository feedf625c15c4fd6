package logviewer

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	AutoScroll  key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Help        key.Binding
	Quit        key.Binding

	// active while editing the filter
	Submit     key.Binding
	Cancel     key.Binding
	CycleField key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AutoScroll: key.NewBinding(
			key.WithKeys("a", " "),
			key.WithHelp("a/space", "AutoScroll"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "/"),
			key.WithHelp("f", "Filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Filter aus"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/G", "Anfang/Ende (G folgt wieder)"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Hilfe"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Beenden"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Anwenden"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Abbrechen"),
		),
		CycleField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Feld"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AutoScroll, k.Filter, k.ClearFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AutoScroll, k.Top},
		{k.Filter, k.ClearFilter},
		{k.Help, k.Quit},
	}
}

// editHelp is shown while the filter input is focused
func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.CycleField, k.Submit, k.Cancel}
}
