package form

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/worksheetai/internal/extract"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// Field names accepted by SetField. They match the form input names.
const (
	FieldTopic              = "topic"
	FieldGradeLevel         = "gradeLevel"
	FieldNumQuestions       = "numQuestions"
	FieldIncludeAnswerKey   = "includeAnswerKey"
	FieldCustomInstructions = "customInstructions"
	FieldSourceText         = "sourceText"
)

// Submission is a frozen copy of the form handed to generation.
type Submission struct {
	Token uint64
	State State
}

// Controller is the only writer of a form State. It is safe for
// concurrent use.
type Controller struct {
	extractor extract.TextExtractor

	mu        sync.Mutex
	state     State
	lastToken uint64
	inFlight  uint64 // 0 when idle
	ingestSeq uint64
}

// NewController creates a controller holding DefaultState. The extractor
// is used by IngestFile.
func NewController(extractor extract.TextExtractor) *Controller {
	if extractor == nil {
		extractor = extract.New()
	}
	return &Controller{
		extractor: extractor,
		state:     DefaultState(),
	}
}

// State returns a copy of the current form.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetTopic updates the topic.
func (c *Controller) SetTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Topic = topic
}

// SetGradeLevel selects one of worksheet.GradeLevels.
func (c *Controller) SetGradeLevel(grade string) error {
	if !worksheet.IsGradeLevel(grade) {
		return &ValidationError{Field: FieldGradeLevel, Message: fmt.Sprintf("Unknown grade level %q.", grade)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.GradeLevel = grade
	return nil
}

// SetNumQuestions stores n clamped to [MinQuestions, MaxQuestions].
func (c *Controller) SetNumQuestions(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.NumQuestions = ClampQuestions(n)
}

// SetIncludeAnswerKey toggles the answer-key request.
func (c *Controller) SetIncludeAnswerKey(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IncludeAnswerKey = on
}

// SetCustomInstructions updates the free-form instructions.
func (c *Controller) SetCustomInstructions(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CustomInstructions = s
}

// SetSourceText overwrites the source text. The recorded file name is
// left alone; typing over an upload keeps showing where it came from.
func (c *Controller) SetSourceText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SourceText = s
}

// SetField updates one field from its string form, as submitted by a
// form surface.
func (c *Controller) SetField(name, value string) error {
	switch name {
	case FieldTopic:
		c.SetTopic(value)
	case FieldGradeLevel:
		return c.SetGradeLevel(value)
	case FieldNumQuestions:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &ValidationError{Field: name, Message: "Number of questions must be a whole number."}
		}
		c.SetNumQuestions(n)
	case FieldIncludeAnswerKey:
		on, err := parseBool(value)
		if err != nil {
			return &ValidationError{Field: name, Message: "Answer key must be on or off."}
		}
		c.SetIncludeAnswerKey(on)
	case FieldCustomInstructions:
		c.SetCustomInstructions(value)
	case FieldSourceText:
		c.SetSourceText(value)
	default:
		return &ValidationError{Field: name, Message: fmt.Sprintf("Unknown field %q.", name)}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// ToggleQuestionType flips one question type. Deselecting the last type
// is allowed; it only blocks submission.
func (c *Controller) ToggleQuestionType(t worksheet.QuestionType) error {
	if !t.Valid() {
		return &ValidationError{Field: "questionTypes", Message: fmt.Sprintf("Unknown question type %q.", t)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.QuestionTypes[t] = !c.state.QuestionTypes[t]
	return nil
}

// IngestFile extracts text from an uploaded file and makes it the source
// text. An empty mimeType is detected from the name and content.
//
// Any failure clears the source text and file name together. When a newer
// IngestFile or RemoveSource call lands during extraction, this call
// returns ErrIngestSuperseded and changes nothing.
func (c *Controller) IngestFile(ctx context.Context, name string, data []byte, mimeType string) error {
	if mimeType == "" {
		mimeType = extract.DetectMIME(name, data)
	}

	c.mu.Lock()
	c.ingestSeq++
	seq := c.ingestSeq
	c.mu.Unlock()

	if len(data) > MaxFileSize {
		err := &UnsupportedSourceError{
			FileName: name,
			MIMEType: mimeType,
			Size:     int64(len(data)),
			Reason:   "File size exceeds 10MB. Please select a smaller file.",
		}
		return c.failIngest(seq, err)
	}
	if !extract.Supported(mimeType) {
		err := &UnsupportedSourceError{
			FileName: name,
			MIMEType: mimeType,
			Size:     int64(len(data)),
			Reason:   "Unsupported file type. Please upload .txt, .pdf, or .docx",
		}
		return c.failIngest(seq, err)
	}

	text, err := c.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		return c.failIngest(seq, &ExtractionError{FileName: name, Err: err})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.ingestSeq {
		return ErrIngestSuperseded
	}
	c.state.SourceText = text
	c.state.SourceFileName = name
	return nil
}

func (c *Controller) failIngest(seq uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.ingestSeq {
		return ErrIngestSuperseded
	}
	c.clearSource()
	return err
}

// RemoveSource clears the source text and its file name.
func (c *Controller) RemoveSource() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingestSeq++
	c.clearSource()
}

func (c *Controller) clearSource() {
	c.state.SourceText = ""
	c.state.SourceFileName = ""
}

// AddLink appends an absolute URL to the source links.
func (c *Controller) AddLink(raw string) error {
	link := strings.TrimSpace(raw)
	if link == "" {
		return &ValidationError{Field: "sourceLinks", Message: "Please enter a URL."}
	}
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() || (u.Host == "" && u.Opaque == "") {
		return &ValidationError{Field: "sourceLinks", Message: "Please enter a valid URL."}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.state.SourceLinks, link) {
		return &ValidationError{Field: "sourceLinks", Message: "This link has already been added."}
	}
	c.state.SourceLinks = append(c.state.SourceLinks, link)
	return nil
}

// RemoveLink deletes a link by value. Unknown links are ignored.
func (c *Controller) RemoveLink(link string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SourceLinks = slices.DeleteFunc(c.state.SourceLinks, func(l string) bool {
		return l == link
	})
}

// BlockReason explains why the form cannot be submitted, or returns "".
func (c *Controller) BlockReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return blockReason(c.state)
}

func blockReason(s State) string {
	if strings.TrimSpace(s.Topic) == "" {
		return "Please enter a topic."
	}
	if len(s.SelectedTypes()) == 0 {
		return "Please select at least one question type."
	}
	return ""
}

// CanSubmit reports whether Submit would be accepted right now.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return blockReason(c.state) == "" && c.inFlight == 0
}

// Pending reports whether a submission is outstanding.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight != 0
}

// Submit freezes the form and issues a new token. Only one submission may
// be outstanding; call Complete with its token when generation finishes.
func (c *Controller) Submit() (Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if reason := blockReason(c.state); reason != "" {
		return Submission{}, fmt.Errorf("%w: %w", ErrSubmitBlocked, &ValidationError{Field: "form", Message: reason})
	}
	if c.inFlight != 0 {
		return Submission{}, ErrSubmissionInFlight
	}

	c.lastToken++
	c.inFlight = c.lastToken
	return Submission{Token: c.lastToken, State: c.state.Clone()}, nil
}

// Complete ends the outstanding submission. It returns ErrStaleToken when
// token is not the outstanding one, in which case the caller must discard
// the result.
func (c *Controller) Complete(token uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == 0 || token != c.inFlight {
		return ErrStaleToken
	}
	c.inFlight = 0
	return nil
}

// Latest returns the most recently issued token.
func (c *Controller) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastToken
}
