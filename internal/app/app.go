// Package app hosts the root bubbletea model for the terminal surface.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/screen"
	formscreen "github.com/abhisek/worksheetai/internal/screens/form"
	"github.com/abhisek/worksheetai/internal/screens/welcome"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/ui/layout"
)

// Options holds the dependencies of the terminal app.
type Options struct {
	Controller *form.Controller
	Generator  sheetgen.Generator

	// Status is shown on the right of the header, typically the model id.
	Status string

	// OutputDir receives exported worksheets.
	OutputDir string

	SkipWelcome bool
	Log         *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates an AppModel starting on the welcome screen, or the
// form when SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	if opts.Controller == nil {
		opts.Controller = form.NewController(nil)
	}
	formFactory := func() screen.Screen {
		return formscreen.New(formscreen.Options{
			Controller: opts.Controller,
			Generator:  opts.Generator,
			OutputDir:  opts.OutputDir,
			Log:        opts.Log,
		})
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = formFactory()
	} else {
		initial = welcome.New(formFactory)
	}
	return AppModel{
		router: router.New(initial),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	status := m.status
	if sp, ok := active.(screen.StatusProvider); ok && sp.Status() != "" {
		status = sp.Status()
	}

	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	body := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height))
	return v
}

// hints are the active screen's own, or a generic set for screens without any.
func (m AppModel) hints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	first := layout.KeyHint{Key: "Any key", Description: "Start"}
	if m.router.Depth() > 1 {
		first = layout.KeyHint{Key: "Esc", Description: "Back"}
	}
	return []layout.KeyHint{first, {Key: "Ctrl+C", Description: "Quit"}}
}

// Run blocks until the user quits the terminal UI.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
