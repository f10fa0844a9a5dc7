package components

import "github.com/abhisek/worksheetai/internal/ui/theme"

// Button renders a call-to-action. Key handling belongs to the owning screen,
// which knows whether the button is focused.
type Button struct {
	Label   string
	Enabled bool
	// Busy replaces the label while work is running, e.g. "⠋ Generating...".
	Busy string
}

func NewButton(label string, enabled bool) Button {
	return Button{Label: label, Enabled: enabled}
}

func (b Button) View() string {
	switch {
	case b.Busy != "":
		return theme.ButtonInactive.Render(b.Busy)
	case b.Enabled:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render("  " + b.Label)
	}
}
