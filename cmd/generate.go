package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/render"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a worksheet without the interactive form",
	Long: `Generate a worksheet from flags and write it as PDF, HTML, text or JSON.

The request goes through the same form checks as the interactive surfaces:
a topic and at least one question type are required.`,
	Example: `  worksheetai generate --topic "The Water Cycle" --grade "4th Grade" --count 8
  worksheetai generate --topic Photosynthesis --types multiple-choice,open-ended --format html --out sheets/`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
	_ = generateCmd.MarkFlagRequired("topic")
}

func addGenerateFlags(f *pflag.FlagSet) {
	f.String("topic", "", "Worksheet topic (required)")
	f.String("grade", worksheet.DefaultGradeLevel, "Grade level, one of: "+strings.Join(worksheet.GradeLevels, ", "))
	f.Int("count", form.DefaultQuestions, fmt.Sprintf("Number of questions (%d-%d)", form.MinQuestions, form.MaxQuestions))
	f.StringSlice("types", []string{string(worksheet.MultipleChoice), string(worksheet.FillInTheBlank)}, "Question types: multiple-choice, fill-in-the-blank, open-ended")
	f.Bool("answer-key", true, "Include an answer key")
	f.String("instructions", "", "Custom instructions for the generator")
	f.String("source-file", "", "Base questions on a .txt, .pdf or .docx file")
	f.StringArray("link", nil, "Web page to use as context (repeatable)")
	f.StringP("out", "o", "", "Output file or directory (default: stdout for text/json, ./<title>.<ext> otherwise)")
	f.String("format", "pdf", "Output format: pdf, html, text or json")
}

// formFromFlags fills a controller the same way the form surfaces do.
func formFromFlags(cmd *cobra.Command) (*form.Controller, error) {
	f := cmd.Flags()
	topic, _ := f.GetString("topic")
	grade, _ := f.GetString("grade")
	count, _ := f.GetInt("count")
	types, _ := f.GetStringSlice("types")
	answerKey, _ := f.GetBool("answer-key")
	instructions, _ := f.GetString("instructions")
	sourceFile, _ := f.GetString("source-file")
	links, _ := f.GetStringArray("link")

	c := form.NewController(nil)
	c.SetTopic(topic)
	if err := c.SetGradeLevel(grade); err != nil {
		return nil, errors.New(form.UserMessage(err))
	}
	if count < form.MinQuestions || count > form.MaxQuestions {
		return nil, fmt.Errorf("--count must be between %d and %d", form.MinQuestions, form.MaxQuestions)
	}
	c.SetNumQuestions(count)
	c.SetIncludeAnswerKey(answerKey)
	c.SetCustomInstructions(instructions)

	want := map[worksheet.QuestionType]bool{}
	for _, raw := range types {
		t, ok := worksheet.ParseQuestionType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown question type %q", raw)
		}
		want[t] = true
	}
	st := c.State()
	for _, t := range worksheet.AllQuestionTypes {
		if st.QuestionTypes[t] != want[t] {
			_ = c.ToggleQuestionType(t)
		}
	}

	if sourceFile != "" {
		data, err := os.ReadFile(sourceFile)
		if err != nil {
			return nil, fmt.Errorf("read source file: %w", err)
		}
		if err := c.IngestFile(cmd.Context(), filepath.Base(sourceFile), data, ""); err != nil {
			return nil, errors.New(form.UserMessage(err))
		}
	}
	for _, l := range links {
		if err := c.AddLink(l); err != nil {
			return nil, fmt.Errorf("%s: %s", l, form.UserMessage(err))
		}
	}
	return c, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	format = strings.ToLower(format)

	var exp render.DocumentExporter
	if format != "json" {
		var err error
		if exp, err = render.ExporterFor(format); err != nil {
			return err
		}
	}

	c, err := formFromFlags(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, "")
	if err != nil {
		return err
	}
	defer log.Sync()

	gen, _, err := newGenerator(cmd, log)
	if err != nil {
		return err
	}

	sub, err := c.Submit()
	if err != nil {
		return errors.New(form.UserMessage(err))
	}
	ws, err := sheetgen.ForState(cmd.Context(), gen, sub.State)
	_ = c.Complete(sub.Token)
	if err != nil {
		return err
	}

	return writeWorksheet(cmd.OutOrStdout(), ws, exp, out, log)
}

// writeWorksheet writes ws with exp, or as JSON when exp is nil. An empty
// out or "-" means stdout for text formats; binary formats default to a
// file named after the title.
func writeWorksheet(stdout io.Writer, ws *worksheet.Worksheet, exp render.DocumentExporter, out string, log *logger.Logger) error {
	ext := ".json"
	if exp != nil {
		ext = exp.Extension()
	}
	textual := exp == nil || ext == ".txt"

	var w io.Writer = stdout
	path := ""
	switch {
	case out == "-" || (out == "" && textual):
	case out == "":
		path = render.FileName(ws.Title, ext)
	default:
		path = out
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			path = filepath.Join(out, render.FileName(ws.Title, ext))
		}
	}

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if exp == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ws); err != nil {
			return err
		}
	} else if err := exp.Export(w, render.Render(ws)); err != nil {
		return fmt.Errorf("export %s: %w", ext, err)
	}

	if path != "" {
		log.Info("worksheet written", "path", path, "questions", len(ws.Questions))
		fmt.Fprintln(os.Stderr, "Wrote", path)
	}
	return nil
}
