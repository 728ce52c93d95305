package monitor

import "github.com/charmbracelet/lipgloss"

var (
	appStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0"))
	frameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(8).Align(lipgloss.Right)
	slotStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeSlot  = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	swatchGlyph = "██"

	modeColors = map[string]lipgloss.Color{
		"drawing":   lipgloss.Color("4"),
		"transform": lipgloss.Color("3"),
		"setting":   lipgloss.Color("5"),
	}
)
