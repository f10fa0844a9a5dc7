package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/ui/theme"
)

type mark int

const (
	markNone mark = iota
	markOK
	markBad
)

// TextInput is a single-line field. After the owning screen acts on its value
// (loading a file, adding a link) it can Mark the outcome, shown as ✓ or ✗
// until the next edit.
type TextInput struct {
	Model textinput.Model
	mark  mark
}

// NewTextInput returns a blurred input. limit caps the rune count; 0 means
// unlimited.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return TextInput{Model: ti}
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }
func (t TextInput) Focused() bool   { return t.Model.Focused() }
func (t TextInput) Value() string   { return t.Model.Value() }

// SetValue replaces the text and clears any mark.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.mark = markNone
}

// Mark records whether the last action on the value succeeded.
func (t *TextInput) Mark(ok bool) {
	t.mark = markBad
	if ok {
		t.mark = markOK
	}
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.mark = markNone
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	switch t.mark {
	case markOK:
		return t.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case markBad:
		return t.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return t.Model.View()
}
