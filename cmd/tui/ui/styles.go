package ui

import (
	"github.com/Varun5711/carmate/internal/page"
	"github.com/charmbracelet/lipgloss"
)

const (
	screenWidth = 80
	// contentWidth is what fits inside BoxStyle at screenWidth-4.
	contentWidth = screenWidth - 8
)

var (
	// Garage palette
	Primary   = lipgloss.Color("#F97316") // Safety orange
	Secondary = lipgloss.Color("#FDBA74") // Light orange
	Accent    = lipgloss.Color("#38BDF8") // Sky blue
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#FACC15") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#94A3B8") // Slate
	Text      = lipgloss.Color("#F1F5F9") // Off-white
	BgDark    = lipgloss.Color("#0F172A") // Asphalt
	BgLight   = lipgloss.Color("#1E293B") // Dark slate

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(22)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 2).
			Width(70)

	SelectedCardStyle = CardStyle.
				BorderForeground(Accent)

	StatusBarStyle = lipgloss.NewStyle().
			Width(screenWidth).
			Background(BgDark).
			Padding(0, 2)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Error).
			Width(screenWidth).
			MarginTop(1)

	PanelTimeStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

func center(s string) string {
	return lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(s)
}

func header(title, subtitle string) string {
	out := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		MarginTop(1).
		Render(TitleStyle.Render(title))
	if subtitle != "" {
		out += "\n" + center(SubtitleStyle.Render(subtitle))
	}
	return out
}

// outcomeLine renders the user-facing result of the last submission.
func outcomeLine(out *page.Outcome) string {
	if out == nil {
		return ""
	}
	if out.OK() {
		return SuccessStyle.Render("✅ " + out.Message)
	}
	return ErrorStyle.Render("❌ " + out.Message)
}
