package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/ui/theme"
)

// Slider shows an integer within [Min, Max] as a track with a knob, followed
// by the current value.
type Slider struct {
	Value, Min, Max int
	// Width of the track, not counting the value label.
	Width int
}

func NewSlider(value, lo, hi, width int) Slider {
	return Slider{Value: value, Min: lo, Max: hi, Width: max(width, 3)}
}

// knob returns the track cell holding the knob.
func (s Slider) knob() int {
	if s.Max <= s.Min {
		return 0
	}
	v := min(max(s.Value, s.Min), s.Max)
	return (v - s.Min) * (s.Width - 1) / (s.Max - s.Min)
}

func (s Slider) View() string {
	k := s.knob()
	filled := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", k))
	knob := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("●")
	rest := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", s.Width-k-1))
	label := theme.Value.Render(fmt.Sprintf("  %d", s.Value))
	return filled + knob + rest + label
}
