// Package screen defines what the router needs from a terminal UI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/worksheetai/internal/ui/layout"
)

// Screen is one page of the terminal UI. View draws only the area between the
// header and footer, which the app frame owns.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title appears in the header bar.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints, typically
// because the useful keys depend on which field has focus.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider overrides the header status while it returns a non-empty
// string, e.g. during generation.
type StatusProvider interface {
	Status() string
}
