// Package preview shows a generated worksheet and exports it.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/render"
	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/screen"
	"github.com/abhisek/worksheetai/internal/ui/components"
	"github.com/abhisek/worksheetai/internal/ui/layout"
	"github.com/abhisek/worksheetai/internal/ui/theme"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// exportDoneMsg reports the result of saving a file.
type exportDoneMsg struct {
	Path string
	Err  error
}

// PreviewScreen renders a worksheet and offers downloads.
type PreviewScreen struct {
	ws     *worksheet.Worksheet
	doc    render.Document
	lines  []string
	offset int
	menu   components.Menu
	outDir string
	log    *logger.Logger

	notice string
	errMsg string
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// New creates a preview for ws. Exports are written to outDir, or the
// working directory when it is empty.
func New(ws *worksheet.Worksheet, outDir string, log *logger.Logger) *PreviewScreen {
	if log == nil {
		log = logger.Nop()
	}
	doc := render.Render(ws)

	var buf bytes.Buffer
	_ = (&render.TextExporter{}).Export(&buf, doc)

	p := &PreviewScreen{
		ws:     ws,
		doc:    doc,
		lines:  strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"),
		outDir: outDir,
		log:    log,
	}
	p.menu = components.NewMenu([]components.MenuItem{
		{Label: "Download PDF", Hotkey: "d", Action: func() tea.Cmd { return p.export("pdf") }},
		{Label: "Save HTML", Hotkey: "h", Action: func() tea.Cmd { return p.export("html") }},
		{Label: "Save text", Hotkey: "t", Action: func() tea.Cmd { return p.export("text") }},
		{Label: "New worksheet", Action: router.Pop},
	})
	return p
}

func (p *PreviewScreen) Init() tea.Cmd { return nil }

func (p *PreviewScreen) Title() string { return "Worksheet Preview" }

func (p *PreviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "↑↓ Enter", Description: "Action"},
		{Key: "D/H/T", Description: "PDF/HTML/Text"},
		{Key: "Esc", Description: "Back"},
	}
}

// Document returns the rendered worksheet.
func (p *PreviewScreen) Document() render.Document {
	return p.doc
}

func (p *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			p.log.Error("export failed", "path", msg.Path, "error", msg.Err)
			p.errMsg = "Could not save " + msg.Path + ": " + msg.Err.Error()
			p.notice = ""
			return p, nil
		}
		p.log.Info("worksheet exported", "path", msg.Path)
		p.notice = "Saved " + msg.Path
		p.errMsg = ""
		return p, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgdown", "space", " ", "ctrl+d":
			p.offset += 10
			return p, nil
		case "pgup", "ctrl+u":
			p.offset = max(0, p.offset-10)
			return p, nil
		case "home", "g":
			p.offset = 0
			return p, nil
		}
		var cmd tea.Cmd
		p.menu, cmd = p.menu.Update(msg)
		return p, cmd
	}
	return p, nil
}

// export writes the worksheet in format to the output directory.
func (p *PreviewScreen) export(format string) tea.Cmd {
	doc := p.doc
	title := p.ws.Title
	dir := p.outDir
	return func() tea.Msg {
		exp, err := render.ExporterFor(format)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		path := filepath.Join(dir, render.FileName(title, exp.Extension()))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Path: path, Err: err}
		}
		if err := exp.Export(f, doc); err != nil {
			f.Close()
			return exportDoneMsg{Path: path, Err: err}
		}
		return exportDoneMsg{Path: path, Err: f.Close()}
	}
}

func (p *PreviewScreen) View(width, height int) string {
	menu := p.menu.View()
	status := ""
	switch {
	case p.errMsg != "":
		status = theme.ErrorText.Render(p.errMsg)
	case p.notice != "":
		status = theme.Notice.Render(p.notice)
	case p.doc.HasAnswerKey():
		status = theme.Hint.Render(fmt.Sprintf("%d questions, answer key included", len(p.doc.Blocks)))
	default:
		status = theme.Hint.Render(fmt.Sprintf("%d questions", len(p.doc.Blocks)))
	}

	bodyHeight := height - lipgloss.Height(menu) - 4
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	maxOffset := max(0, len(p.lines)-bodyHeight)
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
	end := min(len(p.lines), p.offset+bodyHeight)
	visible := strings.Join(p.lines[p.offset:end], "\n")

	sheet := lipgloss.NewStyle().
		Width(min(width-4, 96)).
		Height(bodyHeight).
		Padding(0, 2).
		Foreground(theme.Text).
		Render(visible)

	return lipgloss.JoinVertical(lipgloss.Left, sheet, "", status, menu)
}
