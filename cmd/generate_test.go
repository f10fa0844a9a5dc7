package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/render"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

func newGenerateTestCmd(t *testing.T, args map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	addGenerateFlags(cmd.Flags())
	for k, v := range args {
		require.NoError(t, cmd.Flags().Set(k, v))
	}
	return cmd
}

func TestFormFromFlags(t *testing.T) {
	src := filepath.Join(t.TempDir(), "cells.txt")
	require.NoError(t, os.WriteFile(src, []byte("Cells have a nucleus."), 0o644))

	cmd := newGenerateTestCmd(t, map[string]string{
		"topic":       "Cells",
		"grade":       "7th Grade",
		"count":       "12",
		"types":       "open-ended,Multiple Choice",
		"answer-key":  "false",
		"source-file": src,
		"link":        "https://example.com/cells",
	})

	c, err := formFromFlags(cmd)
	require.NoError(t, err)

	st := c.State()
	assert.Equal(t, "Cells", st.Topic)
	assert.Equal(t, "7th Grade", st.GradeLevel)
	assert.Equal(t, 12, st.NumQuestions)
	assert.Equal(t, []worksheet.QuestionType{worksheet.MultipleChoice, worksheet.OpenEnded}, st.SelectedTypes())
	assert.False(t, st.IncludeAnswerKey)
	assert.Equal(t, "Cells have a nucleus.", st.SourceText)
	assert.Equal(t, "cells.txt", st.SourceFileName)
	assert.Equal(t, []string{"https://example.com/cells"}, st.SourceLinks)
	assert.True(t, c.CanSubmit())
}

func TestFormFromFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		want string
	}{
		{"bad grade", map[string]string{"topic": "x", "grade": "13th Grade"}, "grade"},
		{"count too high", map[string]string{"topic": "x", "count": "21"}, "--count"},
		{"unknown type", map[string]string{"topic": "x", "types": "essay"}, "essay"},
		{"bad link", map[string]string{"topic": "x", "link": "nope"}, "valid URL"},
		{"unsupported file", map[string]string{"topic": "x", "source-file": writeTemp(t, "a.png", "\x89PNG\r\n\x1a\n")}, "Unsupported file type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formFromFlags(newGenerateTestCmd(t, tt.args))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func sampleWorksheet() *worksheet.Worksheet {
	return &worksheet.Worksheet{
		Title: "Cell Quest",
		Topic: "Cells",
		Questions: []worksheet.Question{
			{Question: "What controls the cell?", Type: worksheet.OpenEnded, Answer: "The nucleus"},
		},
	}
}

func TestWriteWorksheet_JSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWorksheet(&buf, sampleWorksheet(), nil, "", logger.Nop()))

	var got worksheet.Worksheet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Cell Quest", got.Title)
}

func TestWriteWorksheet_PDFIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, writeWorksheet(&buf, sampleWorksheet(), render.NewPDFExporter(), dir, logger.Nop()))

	assert.Empty(t, buf.Bytes())
	data, err := os.ReadFile(filepath.Join(dir, "Cell_Quest.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWriteWorksheet_TextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var buf bytes.Buffer
	require.NoError(t, writeWorksheet(&buf, sampleWorksheet(), &render.TextExporter{}, path, logger.Nop()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "What controls the cell?")
}
