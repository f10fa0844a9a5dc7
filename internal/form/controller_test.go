package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/worksheetai/internal/extract"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

type stubExtractor struct {
	text  string
	err   error
	calls int
	hook  func()
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	s.calls++
	if s.hook != nil {
		s.hook()
	}
	return s.text, s.err
}

func TestDefaultState(t *testing.T) {
	c := NewController(nil)
	s := c.State()

	assert.Equal(t, "", s.Topic)
	assert.Equal(t, "5th Grade", s.GradeLevel)
	assert.Equal(t, 5, s.NumQuestions)
	assert.True(t, s.QuestionTypes[worksheet.MultipleChoice])
	assert.True(t, s.QuestionTypes[worksheet.FillInTheBlank])
	assert.False(t, s.QuestionTypes[worksheet.OpenEnded])
	assert.True(t, s.IncludeAnswerKey)
	assert.Empty(t, s.SourceLinks)
}

func TestState_IsACopy(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.AddLink("https://example.com/a"))

	s := c.State()
	s.QuestionTypes[worksheet.OpenEnded] = true
	s.SourceLinks[0] = "https://evil.example"
	s.Topic = "changed"

	fresh := c.State()
	assert.False(t, fresh.QuestionTypes[worksheet.OpenEnded])
	assert.Equal(t, []string{"https://example.com/a"}, fresh.SourceLinks)
	assert.Equal(t, "", fresh.Topic)
}

func TestSetField(t *testing.T) {
	c := NewController(nil)

	require.NoError(t, c.SetField(FieldTopic, "Volcanoes"))
	require.NoError(t, c.SetField(FieldGradeLevel, "High School"))
	require.NoError(t, c.SetField(FieldNumQuestions, "12"))
	require.NoError(t, c.SetField(FieldIncludeAnswerKey, "off"))
	require.NoError(t, c.SetField(FieldCustomInstructions, "Use metric units."))
	require.NoError(t, c.SetField(FieldSourceText, "Magma rises."))

	s := c.State()
	assert.Equal(t, "Volcanoes", s.Topic)
	assert.Equal(t, "High School", s.GradeLevel)
	assert.Equal(t, 12, s.NumQuestions)
	assert.False(t, s.IncludeAnswerKey)
	assert.Equal(t, "Use metric units.", s.CustomInstructions)
	assert.Equal(t, "Magma rises.", s.SourceText)
	assert.True(t, s.QuestionTypes[worksheet.MultipleChoice], "other fields are preserved")
}

func TestSetField_Invalid(t *testing.T) {
	c := NewController(nil)

	tests := []struct {
		field, value string
	}{
		{FieldNumQuestions, "lots"},
		{FieldGradeLevel, "Grade 13"},
		{FieldIncludeAnswerKey, "maybe"},
		{"color", "blue"},
	}
	for _, tt := range tests {
		err := c.SetField(tt.field, tt.value)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "%s=%s", tt.field, tt.value)
		assert.Equal(t, tt.field, verr.Field)
	}
	assert.Equal(t, DefaultState().NumQuestions, c.State().NumQuestions)
}

func TestSetNumQuestions_Clamps(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {7, 7}, {20, 20}, {21, 20}, {500, 20},
	}
	c := NewController(nil)
	for _, tt := range tests {
		c.SetNumQuestions(tt.in)
		assert.Equal(t, tt.want, c.State().NumQuestions, "input %d", tt.in)
	}
}

func TestToggleQuestionType(t *testing.T) {
	c := NewController(nil)

	require.NoError(t, c.ToggleQuestionType(worksheet.OpenEnded))
	assert.True(t, c.State().QuestionTypes[worksheet.OpenEnded])
	require.NoError(t, c.ToggleQuestionType(worksheet.OpenEnded))
	assert.False(t, c.State().QuestionTypes[worksheet.OpenEnded])

	var verr *ValidationError
	assert.ErrorAs(t, c.ToggleQuestionType("essay"), &verr)
}

func TestSubmitGate(t *testing.T) {
	c := NewController(nil)
	assert.False(t, c.CanSubmit())
	assert.Equal(t, "Please enter a topic.", c.BlockReason())

	c.SetTopic("   ")
	assert.False(t, c.CanSubmit(), "whitespace topic is empty")

	c.SetTopic("Fractions")
	assert.True(t, c.CanSubmit())

	require.NoError(t, c.ToggleQuestionType(worksheet.MultipleChoice))
	require.NoError(t, c.ToggleQuestionType(worksheet.FillInTheBlank))
	assert.False(t, c.CanSubmit())
	assert.Equal(t, "Please select at least one question type.", c.BlockReason())

	_, err := c.Submit()
	assert.ErrorIs(t, err, ErrSubmitBlocked)
	assert.Equal(t, "Please select at least one question type.", UserMessage(err))

	require.NoError(t, c.ToggleQuestionType(worksheet.OpenEnded))
	assert.True(t, c.CanSubmit())
	assert.Equal(t, "", c.BlockReason())
}

func TestSubmit_SingleInFlight(t *testing.T) {
	c := NewController(nil)
	c.SetTopic("Photosynthesis")

	sub, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sub.Token)
	assert.Equal(t, "Photosynthesis", sub.State.Topic)
	assert.True(t, c.Pending())
	assert.False(t, c.CanSubmit())

	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// Edits after submit do not reach the frozen snapshot.
	c.SetTopic("Respiration")
	assert.Equal(t, "Photosynthesis", sub.State.Topic)

	assert.ErrorIs(t, c.Complete(sub.Token+1), ErrStaleToken)
	require.NoError(t, c.Complete(sub.Token))
	assert.False(t, c.Pending())
	assert.ErrorIs(t, c.Complete(sub.Token), ErrStaleToken, "a token completes once")

	next, err := c.Submit()
	require.NoError(t, err)
	assert.Greater(t, next.Token, sub.Token)
	assert.Equal(t, next.Token, c.Latest())
}

func TestAddLink(t *testing.T) {
	c := NewController(nil)

	require.NoError(t, c.AddLink("https://en.wikipedia.org/wiki/Photosynthesis"))
	err := c.AddLink("https://en.wikipedia.org/wiki/Photosynthesis")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This link has already been added.", verr.Message)
	assert.Len(t, c.State().SourceLinks, 1)

	for _, bad := range []string{"", "not a url", "/relative/path", "example.com", "http://"} {
		assert.Error(t, c.AddLink(bad), "input %q", bad)
	}

	require.NoError(t, c.AddLink("http://example.com/b"))
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/Photosynthesis", "http://example.com/b"}, c.State().SourceLinks)
}

func TestRemoveLink(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.AddLink("https://a.example"))
	require.NoError(t, c.AddLink("https://b.example"))

	c.RemoveLink("https://missing.example")
	assert.Len(t, c.State().SourceLinks, 2)

	c.RemoveLink("https://a.example")
	assert.Equal(t, []string{"https://b.example"}, c.State().SourceLinks)
}

func TestIngestFile_PlainText(t *testing.T) {
	c := NewController(extract.New())
	c.SetSourceText("typed by hand")

	err := c.IngestFile(context.Background(), "notes.txt", []byte("Leaves are green."), "")
	require.NoError(t, err)

	s := c.State()
	assert.Equal(t, "Leaves are green.", s.SourceText)
	assert.Equal(t, "notes.txt", s.SourceFileName)
}

func TestIngestFile_Oversize(t *testing.T) {
	ext := &stubExtractor{text: "never"}
	c := NewController(ext)
	require.NoError(t, c.IngestFile(context.Background(), "old.txt", []byte("old"), extract.MIMEPlainText))

	big := make([]byte, 11<<20)
	err := c.IngestFile(context.Background(), "big.txt", big, extract.MIMEPlainText)

	var uerr *UnsupportedSourceError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, int64(11<<20), uerr.Size)
	assert.Equal(t, 1, ext.calls, "extraction is not attempted")

	s := c.State()
	assert.Equal(t, "", s.SourceText)
	assert.Equal(t, "", s.SourceFileName)
}

func TestIngestFile_ExactlyMaxSizeAccepted(t *testing.T) {
	c := NewController(&stubExtractor{text: "ok"})
	require.NoError(t, c.IngestFile(context.Background(), "max.txt", make([]byte, MaxFileSize), extract.MIMEPlainText))
	assert.Equal(t, "ok", c.State().SourceText)
}

func TestIngestFile_UnsupportedType(t *testing.T) {
	c := NewController(&stubExtractor{text: "x"})
	err := c.IngestFile(context.Background(), "photo.png", []byte("\x89PNG\r\n\x1a\n"), "")

	var uerr *UnsupportedSourceError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "image/png", uerr.MIMEType)
	assert.True(t, strings.HasPrefix(UserMessage(err), "Unsupported file type"))
}

func TestIngestFile_ExtractionFailureRollsBack(t *testing.T) {
	ext := &stubExtractor{text: "first"}
	c := NewController(ext)
	require.NoError(t, c.IngestFile(context.Background(), "a.pdf", []byte("%PDF-"), ""))

	ext.err = errors.New("corrupt xref")
	err := c.IngestFile(context.Background(), "b.pdf", []byte("%PDF-"), "")

	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "b.pdf", xerr.FileName)
	assert.Equal(t, "There was an error reading the file.", UserMessage(err))

	s := c.State()
	assert.Equal(t, "", s.SourceText)
	assert.Equal(t, "", s.SourceFileName)
}

func TestIngestFile_SupersededByRemove(t *testing.T) {
	ext := &stubExtractor{text: "late text"}
	c := NewController(ext)
	ext.hook = func() { c.RemoveSource() }

	err := c.IngestFile(context.Background(), "slow.txt", []byte("x"), extract.MIMEPlainText)
	assert.ErrorIs(t, err, ErrIngestSuperseded)
	assert.Equal(t, "", c.State().SourceText)
	assert.Equal(t, "", c.State().SourceFileName)
}

func TestIngestFile_SupersededByNewerIngest(t *testing.T) {
	ext := &stubExtractor{text: "old upload"}
	c := NewController(ext)
	ext.hook = func() {
		ext.hook = nil
		ext.text = "new upload"
		require.NoError(t, c.IngestFile(context.Background(), "new.txt", []byte("n"), extract.MIMEPlainText))
		ext.text = "old upload"
	}

	err := c.IngestFile(context.Background(), "old.txt", []byte("o"), extract.MIMEPlainText)
	assert.ErrorIs(t, err, ErrIngestSuperseded)

	s := c.State()
	assert.Equal(t, "new upload", s.SourceText)
	assert.Equal(t, "new.txt", s.SourceFileName)
}

func TestRemoveSource(t *testing.T) {
	c := NewController(&stubExtractor{text: "content"})
	require.NoError(t, c.IngestFile(context.Background(), "doc.docx", []byte("PK"), extract.MIMEDOCX))

	c.RemoveSource()
	s := c.State()
	assert.Equal(t, "", s.SourceText)
	assert.Equal(t, "", s.SourceFileName)
}
