package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/render"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

var errNoGenerator = errors.New("no generator configured")

// formPresentField marks a post of the whole page form. Checkboxes are
// only read when it is set, since unchecked boxes are not submitted.
const formPresentField = "formPresent"

// GET /
func (s *Server) Page(c *gin.Context) {
	flash, notice := s.takeMessages()
	data, err := s.pageData(flash, notice)
	if err != nil {
		s.log.Error("render page failed", "error", err)
		c.String(http.StatusInternalServerError, "could not render page")
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		s.log.Error("write page failed", "error", err)
	}
}

// POST /generate
func (s *Server) GenerateForm(c *gin.Context) {
	if err := s.applyForm(c); err != nil {
		s.setMessages(form.UserMessage(err), "")
		redirectHome(c)
		return
	}
	if _, err := s.generate(c.Request.Context()); err != nil {
		s.setResult(nil, generateMessage(err))
	}
	redirectHome(c)
}

// POST /source
func (s *Server) UploadSource(c *gin.Context) {
	if err := s.applyForm(c); err != nil {
		s.setMessages(form.UserMessage(err), "")
		redirectHome(c)
		return
	}
	name, err := s.ingestUpload(c)
	switch {
	case errors.Is(err, form.ErrIngestSuperseded):
	case err != nil:
		s.setMessages(form.UserMessage(err), "")
	default:
		s.setMessages("", fmt.Sprintf("Loaded %s.", name))
	}
	redirectHome(c)
}

// POST /source/remove
func (s *Server) RemoveSource(c *gin.Context) {
	flash := s.fieldMessage(c)
	s.ctrl.RemoveSource()
	s.setMessages(flash, "Source removed.")
	redirectHome(c)
}

// POST /links
func (s *Server) AddLink(c *gin.Context) {
	flash := s.fieldMessage(c)
	if err := s.ctrl.AddLink(c.PostForm("link")); err != nil {
		flash = form.UserMessage(err)
	}
	s.setMessages(flash, "")
	redirectHome(c)
}

// POST /links/remove
func (s *Server) RemoveLink(c *gin.Context) {
	flash := s.fieldMessage(c)
	s.ctrl.RemoveLink(c.PostForm("removeLink"))
	s.setMessages(flash, "")
	redirectHome(c)
}

// GET /download/:format
func (s *Server) Download(c *gin.Context) {
	ws := s.worksheet()
	if ws == nil {
		c.String(http.StatusNotFound, "no worksheet has been generated yet")
		return
	}
	exp, err := render.ExporterFor(c.Param("format"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	name := render.FileName(ws.Title, exp.Extension())
	c.Header("Content-Type", exp.ContentType())
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Status(http.StatusOK)
	if err := exp.Export(c.Writer, render.Render(ws)); err != nil {
		s.log.Error("export failed", "format", c.Param("format"), "error", err)
	}
}

// applyForm copies posted page fields into the controller.
func (s *Server) applyForm(c *gin.Context) error {
	if c.PostForm(formPresentField) == "" {
		return nil
	}
	for _, name := range []string{
		form.FieldTopic,
		form.FieldGradeLevel,
		form.FieldNumQuestions,
		form.FieldCustomInstructions,
		form.FieldSourceText,
	} {
		value, ok := c.GetPostForm(name)
		if !ok {
			continue
		}
		if err := s.ctrl.SetField(name, value); err != nil {
			return err
		}
	}

	s.ctrl.SetIncludeAnswerKey(c.PostForm(form.FieldIncludeAnswerKey) != "")

	want := map[worksheet.QuestionType]bool{}
	for _, raw := range c.PostFormArray("questionTypes") {
		if t, ok := worksheet.ParseQuestionType(raw); ok {
			want[t] = true
		}
	}
	st := s.ctrl.State()
	for _, t := range worksheet.AllQuestionTypes {
		if st.QuestionTypes[t] != want[t] {
			if err := s.ctrl.ToggleQuestionType(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldMessage applies the posted fields and returns the message for the
// first rejected one, or "". Secondary actions still run after a bad field.
func (s *Server) fieldMessage(c *gin.Context) string {
	if err := s.applyForm(c); err != nil {
		s.log.Warn("form field rejected", "error", err)
		return form.UserMessage(err)
	}
	return ""
}

// ingestUpload reads the "file" part. Reads stop just past MaxFileSize so
// the controller can reject oversized files without buffering them.
func (s *Server) ingestUpload(c *gin.Context) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", &form.ValidationError{Field: "file", Message: "Please choose a file to upload."}
	}
	f, err := fh.Open()
	if err != nil {
		return fh.Filename, &form.ExtractionError{FileName: fh.Filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, form.MaxFileSize+1))
	if err != nil {
		return fh.Filename, &form.ExtractionError{FileName: fh.Filename, Err: err}
	}

	mimeType := fh.Header.Get("Content-Type")
	if strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = ""
	}
	err = s.ctrl.IngestFile(c.Request.Context(), fh.Filename, data, mimeType)
	if err != nil {
		s.log.Warn("source file rejected", "file", fh.Filename, "error", err)
	}
	return fh.Filename, err
}

// generate submits the form and waits for the worksheet. The previous
// worksheet is withdrawn once the submission is accepted, so a failure leaves
// nothing to show or download. Stale results are dropped.
func (s *Server) generate(ctx context.Context) (*worksheet.Worksheet, error) {
	if s.gen == nil {
		return nil, errNoGenerator
	}
	sub, err := s.ctrl.Submit()
	if err != nil {
		return nil, err
	}
	s.log.Info("worksheet submitted", "token", sub.Token, "grade", sub.State.GradeLevel, "questions", sub.State.NumQuestions)
	s.clearResult()

	ws, genErr := sheetgen.ForState(ctx, s.gen, sub.State)
	if err := s.ctrl.Complete(sub.Token); err != nil {
		return nil, err
	}
	if genErr != nil {
		return nil, genErr
	}
	s.setResult(ws, "")
	return ws, nil
}

// generateMessage maps a generate error to the text shown to the user.
func generateMessage(err error) string {
	var gerr *sheetgen.GenerationError
	switch {
	case errors.As(err, &gerr), errors.Is(err, errNoGenerator):
		return sheetgen.UserMessage
	default:
		return form.UserMessage(err)
	}
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
