package components

import "github.com/abhisek/worksheetai/internal/ui/theme"

// Checkbox renders a labelled on/off marker.
func Checkbox(label string, on bool) string {
	if on {
		return theme.Checked.Render("[x]") + " " + theme.Value.Render(label)
	}
	return theme.Unchecked.Render("[ ]") + " " + theme.Value.Render(label)
}
