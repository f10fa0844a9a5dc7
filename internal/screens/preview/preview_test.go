package preview

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

func sample() *worksheet.Worksheet {
	return &worksheet.Worksheet{
		Title: "Rocks: A Study",
		Topic: "Geology",
		Questions: []worksheet.Question{
			{Question: "Which rock forms from lava?", Type: worksheet.MultipleChoice,
				Options: []string{"Igneous", "Sedimentary"}, Answer: "Igneous"},
			{Question: "Sandstone is a ____ rock.", Type: worksheet.FillInTheBlank, Answer: "sedimentary"},
		},
	}
}

func TestPreview_ViewShowsWorksheet(t *testing.T) {
	p := New(sample(), t.TempDir(), nil)
	view := p.View(100, 60)
	assert.Contains(t, view, "Rocks: A Study")
	assert.Contains(t, view, "Which rock forms from lava?")
	assert.Contains(t, view, "Download PDF")
	assert.Equal(t, "Worksheet Preview", p.Title())
}

func TestPreview_ExportHotkeys(t *testing.T) {
	tests := []struct {
		key  rune
		file string
	}{
		{'d', "Rocks__A_Study.pdf"},
		{'h', "Rocks__A_Study.html"},
		{'t', "Rocks__A_Study.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			dir := t.TempDir()
			p := New(sample(), dir, nil)

			_, cmd := p.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
			require.NotNil(t, cmd)
			msg, ok := cmd().(exportDoneMsg)
			require.True(t, ok)
			require.NoError(t, msg.Err)

			want := filepath.Join(dir, tt.file)
			assert.Equal(t, want, msg.Path)
			info, err := os.Stat(want)
			require.NoError(t, err)
			assert.Positive(t, info.Size())

			p.Update(msg)
			assert.Contains(t, p.View(100, 60), "Saved "+want)
		})
	}
}

func TestPreview_ExportFailureShowsError(t *testing.T) {
	p := New(sample(), filepath.Join(t.TempDir(), "missing", "dir"), nil)
	_, cmd := p.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	msg := cmd().(exportDoneMsg)
	require.Error(t, msg.Err)

	p.Update(msg)
	assert.Contains(t, p.View(100, 60), "Could not save")
}

func TestPreview_NewWorksheetPops(t *testing.T) {
	p := New(sample(), t.TempDir(), nil)
	for range 3 {
		p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestPreview_ScrollClamps(t *testing.T) {
	p := New(sample(), t.TempDir(), nil)
	for range 5 {
		p.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	}
	p.View(100, 20)
	assert.LessOrEqual(t, p.offset, len(p.lines))

	p.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	assert.Equal(t, 0, p.offset)
}
