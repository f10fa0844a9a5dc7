// Package theme holds the palette and shared lipgloss styles. Colors follow a
// classroom look: ink blue and chalk green on a dark slate board.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#60A5FA") // ink blue
	Secondary = lipgloss.Color("#34D399") // chalk green
	Accent    = lipgloss.Color("#FBBF24") // highlighter
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171") // red pen
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1F2937") // slate board
	Border    = lipgloss.Color("#475569")
)

// labelWidth fits the longest form label ("Question types") plus a gap.
const labelWidth = 18

var (
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Checked   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Unchecked = lipgloss.NewStyle().Foreground(TextDim)
)

// Form rows.
var (
	Label        = lipgloss.NewStyle().Foreground(TextDim).Width(labelWidth)
	FocusedLabel = lipgloss.NewStyle().Foreground(Primary).Bold(true).Width(labelWidth)
	Value        = lipgloss.NewStyle().Foreground(Text)

	ErrorText = lipgloss.NewStyle().Foreground(Error)
	Notice    = lipgloss.NewStyle().Foreground(Success)
)

var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgCard).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
