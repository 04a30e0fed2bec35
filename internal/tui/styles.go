package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	labelStyle        = lipgloss.NewStyle().Foreground(colorText)
	labelFocusedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelInvalidStyle = lipgloss.NewStyle().Foreground(colorError)

	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	stateStyle = lipgloss.NewStyle().Foreground(colorBorder)

	inspectorTitleStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	inspectorRowStyle   = lipgloss.NewStyle().Foreground(colorBorder)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface)
	footerStyle = lipgloss.NewStyle().Background(colorMantle)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
)
