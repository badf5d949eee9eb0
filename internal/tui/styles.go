package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	selectFg  = lipgloss.Color("#3B8CFF")
	hoverFg   = lipgloss.Color("#FFA500")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	overlayStyle = lipgloss.NewStyle().Foreground(selectFg)
	hoverStyle   = lipgloss.NewStyle().Foreground(hoverFg)
)

var seriesPalette = []lipgloss.Color{"86", "213", "221", "117", "156", "209", "147", "203"}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(seriesPalette[i%len(seriesPalette)])
}

// heatPalette runs from low (dark blue) to high (pale yellow).
var heatPalette = []lipgloss.Color{"17", "18", "19", "25", "31", "37", "43", "79", "115", "151", "187", "229"}

func heatStyle(t float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(heatPalette[heatLevel(t)])
}
