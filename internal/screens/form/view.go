package form

import (
	"strings"

	"charm.land/lipgloss/v2"

	ctrl "github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/ui/components"
	"github.com/abhisek/worksheetai/internal/ui/theme"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *FormScreen) View(width, height int) string {
	st := s.opts.Controller.State()
	var b strings.Builder

	row := func(f field, label, value string) {
		style := theme.Label
		marker := "  "
		if s.focus == f {
			style = theme.FocusedLabel
			marker = theme.Selected.Render("▸ ")
		}
		b.WriteString(marker + style.Render(label) + value + "\n")
	}

	row(fieldTopic, "Topic", s.inputs[fieldTopic].View())
	row(fieldGrade, "Grade level", theme.Value.Render("‹ "+st.GradeLevel+" ›"))

	row(fieldCount, "Questions", components.NewSlider(st.NumQuestions, ctrl.MinQuestions, ctrl.MaxQuestions, 24).View())

	row(fieldMultipleChoice, "Question types", components.Checkbox(worksheet.MultipleChoice.Label(), st.QuestionTypes[worksheet.MultipleChoice]))
	row(fieldFillInTheBlank, "", components.Checkbox(worksheet.FillInTheBlank.Label(), st.QuestionTypes[worksheet.FillInTheBlank]))
	row(fieldOpenEnded, "", components.Checkbox(worksheet.OpenEnded.Label(), st.QuestionTypes[worksheet.OpenEnded]))
	row(fieldAnswerKey, "Answer key", components.Checkbox("Include answer key", st.IncludeAnswerKey))
	row(fieldInstructions, "Instructions", s.inputs[fieldInstructions].View())

	b.WriteString("\n")
	row(fieldSourceText, "Source text", s.inputs[fieldSourceText].View())
	fileLine := s.inputs[fieldSourceFile].View()
	if st.SourceFileName != "" {
		fileLine += theme.Hint.Render("  using " + st.SourceFileName)
	}
	row(fieldSourceFile, "Source file", fileLine)
	row(fieldLink, "Add link", s.inputs[fieldLink].View())
	for _, l := range st.SourceLinks {
		b.WriteString("  " + theme.Label.Render("") + theme.Hint.Render("• "+l) + "\n")
	}

	b.WriteString("\n")
	button := components.NewButton("Generate Worksheet", s.opts.Controller.CanSubmit())
	if s.generating {
		button.Busy = spinnerFrames[s.spinnerTick%len(spinnerFrames)] + " Generating..."
	}
	row(fieldGenerate, "", button.View())

	switch {
	case s.errMsg != "":
		b.WriteString("\n  " + theme.ErrorText.Render(s.errMsg) + "\n")
	case s.ingesting:
		b.WriteString("\n  " + theme.Hint.Render(spinnerFrames[s.spinnerTick%len(spinnerFrames)]+" Reading file...") + "\n")
	case s.notice != "":
		b.WriteString("\n  " + theme.Notice.Render(s.notice) + "\n")
	case !s.generating && s.opts.Controller.BlockReason() != "":
		b.WriteString("\n  " + theme.Hint.Render(s.opts.Controller.BlockReason()) + "\n")
	}

	card := theme.Card.Width(min(width-4, 96)).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}
