package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the arcade palette.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
	accentColor    = "#22D3EE" // Cyan
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle colors panel borders.
	BoxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor))

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights the row or button under the cursor.
	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	// TextStyle renders ordinary body text.
	TextStyle = lipgloss.NewStyle()

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// AccentStyle renders the clock digits and other highlights.
	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor)).
			Bold(true)

	// HelpKeyStyle renders key names in the footer.
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor))

	// ModalStyle fills the delete confirmation dialog.
	ModalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor)).
			Bold(true)
)

// Progress bar colors.
const (
	ProgressStart = primaryColor
	ProgressEnd   = accentColor
	XPStart       = secondaryColor
	XPEnd         = warningColor
)

// HeatStyles maps heat levels 0..4 to cell styles.
var HeatStyles = [5]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#0E4429")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#006D32")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#26A641")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#39D353")),
}

// HeatGlyphs are drawn per level so the map reads without color.
var HeatGlyphs = [5]string{"·", "░", "▒", "▓", "█"}
