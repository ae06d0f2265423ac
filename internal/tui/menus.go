package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// Terminal layout constants.
const (
	// DefaultMenuWidth is the widest a prompt grows.
	DefaultMenuWidth = 80

	// TerminalEdgeMargin is kept free between the prompt and the terminal edge.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the narrowest usable prompt.
	MinMenuWidth = 40
)

// ErrMenuCanceled is returned when the user aborts a prompt or no terminal
// is attached.
var ErrMenuCanceled = cberrors.ErrMenuCanceled

// MenuConfig holds configuration for prompts.
type MenuConfig struct {
	// Width is the maximum prompt width. Zero adapts to the terminal.
	Width int
	// Accessible enables huh's screen-reader mode.
	Accessible bool
}

// NewMenuConfig creates a MenuConfig. Accessible mode follows the ACCESSIBLE
// environment variable.
func NewMenuConfig() *MenuConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")
	return &MenuConfig{
		Width:      DefaultMenuWidth,
		Accessible: accessible,
	}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}

// Theme returns the huh theme built from the semantic colors.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// Confirm asks a yes/no question. It returns ErrMenuCanceled when the user
// aborts or when no terminal is attached.
func Confirm(message, description string, defaultYes bool) (bool, error) {
	return ConfirmWithConfig(message, description, defaultYes, NewMenuConfig())
}

// ConfirmWithConfig is Confirm with an explicit configuration.
func ConfirmWithConfig(message, description string, defaultYes bool, cfg *MenuConfig) (bool, error) {
	confirmed := defaultYes

	field := huh.NewConfirm().
		Title(message).
		Description(description).
		Affirmative("Oui").
		Negative("Non").
		Value(&confirmed)

	if err := runForm(field, cfg, "confirm prompt failed"); err != nil {
		return false, err
	}
	return confirmed, nil
}

// adaptWidth returns maxWidth, shrunk to fit the terminal but never below
// MinMenuWidth.
func adaptWidth(maxWidth int) int {
	if maxWidth <= 0 {
		maxWidth = DefaultMenuWidth
	}
	available := TerminalWidth() - TerminalEdgeMargin
	return max(min(maxWidth, available), MinMenuWidth)
}

// runForm runs a single-field form. Without a terminal on both ends it
// returns ErrMenuCanceled instead of blocking on stdin.
func runForm(field huh.Field, cfg *MenuConfig, errorContext string) error {
	if !IsInteractive() {
		return ErrMenuCanceled
	}
	if cfg == nil {
		cfg = NewMenuConfig()
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithWidth(adaptWidth(cfg.Width)).
		WithAccessible(cfg.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrMenuCanceled
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}
	return nil
}
