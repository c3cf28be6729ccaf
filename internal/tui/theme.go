package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Amber       = lipgloss.Color("#FFD700")
	Red         = lipgloss.Color("#FF4136")
	White       = lipgloss.Color("#e0e0e0")
	LightGray   = lipgloss.Color("#aaaaaa")
	MidGray     = lipgloss.Color("#3a3a4e")

	// Banner and headers
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	// Status line
	SuccessStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Amber)

	InfoStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Prompts
	PromptStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	// Confirmation dialog
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// Separator
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// CGPA grading, same thresholds the record table uses
	CGPAHighStyle = lipgloss.NewStyle().Foreground(BrightGreen)
	CGPAMidStyle  = lipgloss.NewStyle().Foreground(Amber)
	CGPALowStyle  = lipgloss.NewStyle().Foreground(Red)
)

const Banner = `
  ██████╗  ██████╗ ██╗     ██╗     ██████╗  ██████╗  ██████╗ ██╗  ██╗
  ██╔══██╗██╔═══██╗██║     ██║     ██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
  ██████╔╝██║   ██║██║     ██║     ██████╔╝██║   ██║██║   ██║█████╔╝
  ██╔══██╗██║   ██║██║     ██║     ██╔══██╗██║   ██║██║   ██║██╔═██╗
  ██║  ██║╚██████╔╝███████╗███████╗██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚══════╝╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝
`

// cgpaStyle picks the grading color for a CGPA value.
func cgpaStyle(cgpa float64) lipgloss.Style {
	switch {
	case cgpa >= 3.5:
		return CGPAHighStyle
	case cgpa >= 2.5:
		return CGPAMidStyle
	default:
		return CGPALowStyle
	}
}
