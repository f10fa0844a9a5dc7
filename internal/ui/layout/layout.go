// Package layout draws the frame around every screen: a header bar with the
// product name, screen title and generation status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/ui/theme"
)

// The form needs room for its widest row (label column plus the count
// slider) and every field at once.
const (
	MinWidth  = 64
	MinHeight = 20
)

const (
	brand     = "Worksheet AI"
	hintGap   = "   "
	barMargin = 2
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsTooSmall reports whether the terminal cannot fit the form.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The worksheet form needs a bigger terminal.\n\nResize to at least %d x %d (now %d x %d).",
			MinWidth, MinHeight, width, height,
		))
}

func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// innerWidth is the usable width inside a bar's border and margins.
func innerWidth(width int) int {
	return max(0, width-2-2*barMargin)
}

// RenderHeader puts the brand on the left, the screen title in the middle and
// status (for example "Generating…") on the right. The title moves right when
// the brand would overlap it; status always stays flush right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := innerWidth(width)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	gapL := max(1, (inner-cw)/2-lw)
	gapR := max(1, inner-lw-gapL-cw-rw)

	line := strings.Repeat(" ", barMargin) +
		left + strings.Repeat(" ", gapL) +
		center + strings.Repeat(" ", gapR) + right
	return barStyle(width).Render(line)
}

// RenderFooter lists key hints left to right. Hints that would not fit are
// dropped from the end, so put the important ones first.
func RenderFooter(hints []KeyHint, width int) string {
	inner := innerWidth(width)
	var b strings.Builder
	used := 0
	for i, h := range hints {
		part := h.render()
		w := lipgloss.Width(part)
		if i > 0 {
			w += len(hintGap)
		}
		if used+w > inner {
			break
		}
		if i > 0 {
			b.WriteString(hintGap)
		}
		b.WriteString(part)
		used += w
	}
	return barStyle(width).Render(strings.Repeat(" ", barMargin) + b.String())
}

// RenderFrame stacks header, content and footer, padding the content so the
// footer sits on the last rows of the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
