package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorText      = lipgloss.Color("#D1D5DB")
)

// Theme holds the styles shared by the printer and the terminal prompts.
// Styles are bound to a renderer so color detection follows the output
// they are written to.
type Theme struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Normal  lipgloss.Style

	// Prompt styles.
	Question     lipgloss.Style
	Answer       lipgloss.Style
	Cursor       lipgloss.Style
	Selected     lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
	Help         lipgloss.Style
	Rule         lipgloss.Style
}

// NewTheme builds the theme for r.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1),
		Heading: r.NewStyle().Bold(true).Foreground(colorSecondary),
		Accent:  r.NewStyle().Foreground(colorSecondary),
		Success: r.NewStyle().Foreground(colorSuccess),
		Warning: r.NewStyle().Foreground(colorWarning),
		Error:   r.NewStyle().Foreground(colorDanger),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Normal:  r.NewStyle().Foreground(colorText),

		Question: r.NewStyle().Bold(true),
		Answer:   r.NewStyle().Foreground(colorSecondary),
		Cursor:   r.NewStyle().Foreground(colorPrimary).Bold(true),
		Selected: r.NewStyle().Foreground(colorPrimary).Bold(true),
		Button: r.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(colorMuted).
			Padding(0, 2),
		ActiveButton: r.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(colorPrimary).
			Padding(0, 2).
			Bold(true),
		Help: r.NewStyle().Foreground(colorMuted),
		Rule: r.NewStyle().Foreground(colorBorder),
	}
}
