// Package form is the terminal screen for building a worksheet request.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	ctrl "github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/screen"
	"github.com/abhisek/worksheetai/internal/screens/preview"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/ui/components"
	"github.com/abhisek/worksheetai/internal/ui/layout"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

type field int

const (
	fieldTopic field = iota
	fieldGrade
	fieldCount
	fieldMultipleChoice
	fieldFillInTheBlank
	fieldOpenEnded
	fieldAnswerKey
	fieldInstructions
	fieldSourceText
	fieldSourceFile
	fieldLink
	fieldGenerate
	numFields
)

const spinnerInterval = 100 * time.Millisecond

// Options configures the form screen.
type Options struct {
	Controller *ctrl.Controller
	Generator  sheetgen.Generator

	// OutputDir is where the preview screen saves exports.
	OutputDir string

	Log *logger.Logger
}

// FormScreen edits the worksheet request and submits it.
type FormScreen struct {
	opts   Options
	focus  field
	inputs map[field]*components.TextInput

	generating  bool
	ingesting   bool
	spinnerTick int
	errMsg      string
	notice      string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates the form screen.
func New(opts Options) *FormScreen {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	topic := components.NewTextInput("e.g., The Solar System", 200)
	instructions := components.NewTextInput("optional, e.g. use metric units", 500)
	sourceText := components.NewTextInput("optional, paste text to base questions on", 0)
	sourceFile := components.NewTextInput("path to .txt, .pdf or .docx, then Enter", 0)
	link := components.NewTextInput("https://..., then Enter", 2048)

	s := &FormScreen{
		opts: opts,
		inputs: map[field]*components.TextInput{
			fieldTopic:        &topic,
			fieldInstructions: &instructions,
			fieldSourceText:   &sourceText,
			fieldSourceFile:   &sourceFile,
			fieldLink:         &link,
		},
	}

	st := opts.Controller.State()
	topic.SetValue(st.Topic)
	instructions.SetValue(st.CustomInstructions)
	sourceText.SetValue(st.SourceText)
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(fieldTopic)
}

func (s *FormScreen) Title() string {
	return "New Worksheet"
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
	}
	switch s.focus {
	case fieldGrade, fieldCount:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case fieldMultipleChoice, fieldFillInTheBlank, fieldOpenEnded, fieldAnswerKey:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldSourceFile, fieldSourceText:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Remove source"})
	case fieldLink:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Remove last link"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+G", Description: "Generate"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

// Generating reports whether a submission is outstanding.
func (s *FormScreen) Generating() bool {
	return s.generating
}

func (s *FormScreen) Status() string {
	switch {
	case s.generating:
		return "Generating..."
	case s.ingesting:
		return "Reading file..."
	}
	return ""
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case worksheetReadyMsg:
		return s.handleWorksheetReady(msg)

	case ingestDoneMsg:
		return s.handleIngestDone(msg)

	case spinnerTickMsg:
		if !s.generating && !s.ingesting {
			return s, nil
		}
		s.spinnerTick++
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if in := s.inputs[s.focus]; in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *FormScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "ctrl+g":
		return s, s.submit()
	}

	c := s.opts.Controller
	switch s.focus {
	case fieldGrade:
		switch key {
		case "left", "h":
			_ = c.SetGradeLevel(cycleGrade(c.State().GradeLevel, -1))
		case "right", "l":
			_ = c.SetGradeLevel(cycleGrade(c.State().GradeLevel, 1))
		}
		return s, nil

	case fieldCount:
		switch key {
		case "left", "h", "-":
			c.SetNumQuestions(c.State().NumQuestions - 1)
		case "right", "l", "+":
			c.SetNumQuestions(c.State().NumQuestions + 1)
		}
		return s, nil

	case fieldMultipleChoice, fieldFillInTheBlank, fieldOpenEnded:
		if key == "space" || key == " " || key == "enter" {
			_ = c.ToggleQuestionType(questionTypeFor(s.focus))
		}
		return s, nil

	case fieldAnswerKey:
		if key == "space" || key == " " || key == "enter" {
			c.SetIncludeAnswerKey(!c.State().IncludeAnswerKey)
		}
		return s, nil

	case fieldGenerate:
		if key == "enter" {
			return s, s.submit()
		}
		return s, nil

	case fieldSourceFile:
		switch key {
		case "enter":
			return s, s.ingest()
		case "ctrl+x":
			s.removeSource()
			return s, nil
		}

	case fieldSourceText:
		if key == "ctrl+x" {
			s.removeSource()
			return s, nil
		}

	case fieldLink:
		switch key {
		case "enter":
			s.addLink()
			return s, nil
		case "ctrl+x":
			if links := c.State().SourceLinks; len(links) > 0 {
				c.RemoveLink(links[len(links)-1])
			}
			return s, nil
		}
	}

	in := s.inputs[s.focus]
	if in == nil {
		return s, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	s.syncInput(s.focus)
	return s, cmd
}

// syncInput copies a text field into the controller.
func (s *FormScreen) syncInput(f field) {
	c := s.opts.Controller
	switch f {
	case fieldTopic:
		c.SetTopic(s.inputs[f].Value())
	case fieldInstructions:
		c.SetCustomInstructions(s.inputs[f].Value())
	case fieldSourceText:
		c.SetSourceText(s.inputs[f].Value())
	}
}

func (s *FormScreen) setFocus(f field) tea.Cmd {
	if in := s.inputs[s.focus]; in != nil {
		in.Blur()
	}
	s.focus = f
	if in := s.inputs[f]; in != nil {
		return in.Focus()
	}
	return nil
}

func (s *FormScreen) submit() tea.Cmd {
	sub, err := s.opts.Controller.Submit()
	if err != nil {
		s.errMsg = ctrl.UserMessage(err)
		return nil
	}

	s.generating = true
	s.errMsg = ""
	s.notice = ""
	s.opts.Log.Info("worksheet submitted",
		"token", sub.Token,
		"grade", sub.State.GradeLevel,
		"questions", sub.State.NumQuestions,
	)

	gen := s.opts.Generator
	return tea.Batch(
		func() tea.Msg {
			ws, err := sheetgen.ForState(context.Background(), gen, sub.State)
			return worksheetReadyMsg{Token: sub.Token, Worksheet: ws, Err: err}
		},
		spinnerTick(),
	)
}

func (s *FormScreen) handleWorksheetReady(msg worksheetReadyMsg) (screen.Screen, tea.Cmd) {
	if err := s.opts.Controller.Complete(msg.Token); err != nil {
		s.opts.Log.Debug("discarding stale worksheet", "token", msg.Token)
		return s, nil
	}
	s.generating = false

	if msg.Err != nil {
		s.errMsg = sheetgen.UserMessage
		return s, nil
	}

	next := preview.New(msg.Worksheet, s.opts.OutputDir, s.opts.Log)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *FormScreen) ingest() tea.Cmd {
	path := strings.TrimSpace(s.inputs[fieldSourceFile].Value())
	if path == "" {
		s.errMsg = "Please enter a file path."
		return nil
	}

	s.ingesting = true
	s.errMsg = ""
	s.notice = ""
	c := s.opts.Controller
	return tea.Batch(
		func() tea.Msg {
			name := filepath.Base(path)
			data, err := readSource(path)
			if err != nil {
				return ingestDoneMsg{Name: name, Err: err}
			}
			return ingestDoneMsg{Name: name, Err: c.IngestFile(context.Background(), name, data, "")}
		},
		spinnerTick(),
	)
}

// readSource reads at most one byte past MaxFileSize, leaving the size
// rejection to the controller without loading an oversized file.
func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(io.LimitReader(f, ctrl.MaxFileSize+1))
}

func (s *FormScreen) handleIngestDone(msg ingestDoneMsg) (screen.Screen, tea.Cmd) {
	s.ingesting = false
	if msg.Err != nil {
		if errors.Is(msg.Err, ctrl.ErrIngestSuperseded) {
			return s, nil
		}
		s.opts.Log.Warn("source file rejected", "file", msg.Name, "error", msg.Err)
		s.errMsg = ctrl.UserMessage(msg.Err)
		s.inputs[fieldSourceText].SetValue("")
		s.inputs[fieldSourceFile].Mark(false)
		return s, nil
	}

	st := s.opts.Controller.State()
	s.inputs[fieldSourceText].SetValue(st.SourceText)
	s.inputs[fieldSourceFile].Mark(true)
	s.notice = fmt.Sprintf("Loaded %s (%d characters).", st.SourceFileName, len([]rune(st.SourceText)))
	return s, nil
}

func (s *FormScreen) removeSource() {
	s.opts.Controller.RemoveSource()
	s.inputs[fieldSourceText].SetValue("")
	s.inputs[fieldSourceFile].SetValue("")
	s.notice = "Source removed."
}

func (s *FormScreen) addLink() {
	in := s.inputs[fieldLink]
	if err := s.opts.Controller.AddLink(in.Value()); err != nil {
		s.errMsg = ctrl.UserMessage(err)
		in.Mark(false)
		return
	}
	s.errMsg = ""
	in.SetValue("")
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func questionTypeFor(f field) worksheet.QuestionType {
	switch f {
	case fieldFillInTheBlank:
		return worksheet.FillInTheBlank
	case fieldOpenEnded:
		return worksheet.OpenEnded
	default:
		return worksheet.MultipleChoice
	}
}

func cycleGrade(current string, delta int) string {
	n := len(worksheet.GradeLevels)
	idx := 0
	for i, g := range worksheet.GradeLevels {
		if g == current {
			idx = i
			break
		}
	}
	return worksheet.GradeLevels[((idx+delta)%n+n)%n]
}
