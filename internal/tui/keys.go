package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Zoom    key.Binding
	Clear   key.Binding
	Reset   key.Binding
	Stride  key.Binding
	Export  key.Binding
	Top     key.Binding
	Sidebar key.Binding
	Open    key.Binding
	Paste   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Zoom:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stride:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stride")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Top:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "top values")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sidebar")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Zoom, k.Clear, k.Reset, k.Stride, k.Export, k.Top, k.Sidebar, k.Paste, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Zoom, k.Clear, k.Reset, k.Stride},
		{k.Export, k.Top, k.Sidebar, k.Open},
		{k.Paste, k.Help, k.Quit},
	}
}
