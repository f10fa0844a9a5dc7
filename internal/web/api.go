package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// StateView is the JSON form of the form state.
type StateView struct {
	Topic              string          `json:"topic"`
	GradeLevel         string          `json:"gradeLevel"`
	NumQuestions       int             `json:"numQuestions"`
	QuestionTypes      map[string]bool `json:"questionTypes"`
	IncludeAnswerKey   bool            `json:"includeAnswerKey"`
	CustomInstructions string          `json:"customInstructions"`
	SourceText         string          `json:"sourceText"`
	SourceFileName     string          `json:"sourceFileName,omitempty"`
	SourceLinks        []string        `json:"sourceLinks"`
	CanSubmit          bool            `json:"canSubmit"`
	BlockReason        string          `json:"blockReason,omitempty"`
	Generating         bool            `json:"generating"`
}

func (s *Server) stateView() StateView {
	st := s.ctrl.State()
	types := make(map[string]bool, len(worksheet.AllQuestionTypes))
	for _, t := range worksheet.AllQuestionTypes {
		types[string(t)] = st.QuestionTypes[t]
	}
	return StateView{
		Topic:              st.Topic,
		GradeLevel:         st.GradeLevel,
		NumQuestions:       st.NumQuestions,
		QuestionTypes:      types,
		IncludeAnswerKey:   st.IncludeAnswerKey,
		CustomInstructions: st.CustomInstructions,
		SourceText:         st.SourceText,
		SourceFileName:     st.SourceFileName,
		SourceLinks:        st.SourceLinks,
		CanSubmit:          s.ctrl.CanSubmit(),
		BlockReason:        s.ctrl.BlockReason(),
		Generating:         s.ctrl.Pending(),
	}
}

// GET /api/state
func (s *Server) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.stateView())
}

type setFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// POST /api/fields
func (s *Server) SetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Request body must be {\"name\": ..., \"value\": ...}.")
		return
	}
	if err := s.ctrl.SetField(req.Name, req.Value); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid_field", form.UserMessage(err))
		return
	}
	c.JSON(http.StatusOK, s.stateView())
}

// POST /api/question-types/:type/toggle
func (s *Server) ToggleQuestionType(c *gin.Context) {
	t, ok := worksheet.ParseQuestionType(c.Param("type"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_type", "Unknown question type.")
		return
	}
	if err := s.ctrl.ToggleQuestionType(t); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid_field", form.UserMessage(err))
		return
	}
	c.JSON(http.StatusOK, s.stateView())
}

// POST /api/generate
func (s *Server) GenerateJSON(c *gin.Context) {
	ws, err := s.generate(c.Request.Context())
	if err != nil {
		var gerr *sheetgen.GenerationError
		switch {
		case errors.Is(err, form.ErrSubmitBlocked):
			respondError(c, http.StatusUnprocessableEntity, "submit_blocked", form.UserMessage(err))
		case errors.Is(err, form.ErrSubmissionInFlight):
			respondError(c, http.StatusConflict, "in_flight", form.UserMessage(err))
		case errors.Is(err, form.ErrStaleToken):
			respondError(c, http.StatusConflict, "stale", "The form changed while generating.")
		case errors.As(err, &gerr):
			s.log.Warn("generation failed", "kind", string(gerr.Kind), "error", gerr.Detail())
			respondError(c, http.StatusBadGateway, "generation_failed", sheetgen.UserMessage)
		default:
			respondError(c, http.StatusServiceUnavailable, "unavailable", sheetgen.UserMessage)
		}
		return
	}
	c.JSON(http.StatusOK, ws)
}

// GET /api/worksheet
func (s *Server) GetWorksheet(c *gin.Context) {
	ws := s.worksheet()
	if ws == nil {
		respondError(c, http.StatusNotFound, "not_found", "No worksheet has been generated yet.")
		return
	}
	c.JSON(http.StatusOK, ws)
}
