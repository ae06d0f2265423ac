// Package tui provides terminal output components for classboard.
//
// Styles are built with Lip Gloss. All colors are AdaptiveColor so they read
// on light and dark terminals.
//
// # Semantic Colors
//
//   - ColorPrimary (Blue): headings, informational lines
//   - ColorSuccess (Green): accepted drafts, finished tasks
//   - ColorWarning (Yellow): warnings that need a confirmation
//   - ColorError (Red): blocking errors
//   - ColorMuted (Gray): secondary text, canceled items
//
// Every status is shown as icon + color + text, so output stays readable
// when colors are off.
//
// # NO_COLOR Support
//
// Call CheckNoColor() before rendering to honor NO_COLOR and TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/classboard/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for headings and informational lines.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for accepted drafts and finished items.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for warnings that need confirmation.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for blocking errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Heading lipgloss.Style
}

// NewOutputStyles creates the common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
	}
}

// CheckNoColor switches lipgloss to the ASCII profile when colors are off.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false when NO_COLOR is present (any value, even
// empty) or TERM=dumb. See https://no-color.org/.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// TaskStatusColor returns the color of a task status.
func TaskStatusColor(status constants.TaskStatus) lipgloss.AdaptiveColor {
	switch status {
	case constants.TaskStatusInProgress:
		return ColorPrimary
	case constants.TaskStatusDone:
		return ColorSuccess
	case constants.TaskStatusLate:
		return ColorError
	case constants.TaskStatusTodo:
		return ColorMuted
	default:
		return ColorMuted
	}
}

// TaskStatusIcon returns the icon of a task status.
func TaskStatusIcon(status constants.TaskStatus) string {
	switch status {
	case constants.TaskStatusTodo:
		return "○"
	case constants.TaskStatusInProgress:
		return "●"
	case constants.TaskStatusDone:
		return "✓"
	case constants.TaskStatusLate:
		return "⚠"
	default:
		return "?"
	}
}

// ProjectStatusColor returns the color of a project status.
func ProjectStatusColor(status constants.ProjectStatus) lipgloss.AdaptiveColor {
	switch status {
	case constants.ProjectStatusInProgress:
		return ColorPrimary
	case constants.ProjectStatusDone:
		return ColorSuccess
	case constants.ProjectStatusPlanned, constants.ProjectStatusCanceled:
		return ColorMuted
	default:
		return ColorMuted
	}
}

// ProjectStatusIcon returns the icon of a project status.
func ProjectStatusIcon(status constants.ProjectStatus) string {
	switch status {
	case constants.ProjectStatusPlanned:
		return "○"
	case constants.ProjectStatusInProgress:
		return "●"
	case constants.ProjectStatusDone:
		return "✓"
	case constants.ProjectStatusCanceled:
		return "✗"
	default:
		return "?"
	}
}

// Status is implemented by the project and task status types.
type Status interface {
	constants.ProjectStatus | constants.TaskStatus
}

// FormatStatus renders a status as "icon TEXT" in its color.
func FormatStatus[S Status](status S) string {
	var (
		icon  string
		color lipgloss.AdaptiveColor
	)
	switch s := any(status).(type) {
	case constants.ProjectStatus:
		icon, color = ProjectStatusIcon(s), ProjectStatusColor(s)
	case constants.TaskStatus:
		icon, color = TaskStatusIcon(s), TaskStatusColor(s)
	}
	text := icon + " " + string(status)
	if !HasColorSupport() {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
