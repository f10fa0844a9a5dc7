// Package web serves the worksheet form and results in a browser.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/sheetgen"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// DefaultAddr keeps the server on loopback.
const DefaultAddr = "127.0.0.1:8080"

const sessionCookie = "worksheetai_session"

// Options configures a Server.
type Options struct {
	Controller *form.Controller
	Generator  sheetgen.Generator
	Log        *logger.Logger
}

// Server holds the single form of a local user and the last result.
type Server struct {
	ctrl    *form.Controller
	gen     sheetgen.Generator
	log     *logger.Logger
	session string

	mu      sync.Mutex
	current *worksheet.Worksheet
	flash   string
	notice  string
}

// NewServer creates a Server. A nil Controller gets a fresh form.
func NewServer(opts Options) *Server {
	if opts.Controller == nil {
		opts.Controller = form.NewController(nil)
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	session := uuid.NewString()
	return &Server{
		ctrl:    opts.Controller,
		gen:     opts.Generator,
		log:     opts.Log.With("component", "web", "session", session),
		session: session,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.MaxMultipartMemory = form.MaxFileSize + 1<<20

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Page: one multipart form whose buttons post to these actions.
	router.GET("/", s.Page)
	router.POST("/generate", s.GenerateForm)
	router.POST("/source", s.UploadSource)
	router.POST("/source/remove", s.RemoveSource)
	router.POST("/links", s.AddLink)
	router.POST("/links/remove", s.RemoveLink)
	router.GET("/download/:format", s.Download)

	api := router.Group("/api")
	{
		api.GET("/state", s.GetState)
		api.POST("/fields", s.SetField)
		api.POST("/question-types/:type/toggle", s.ToggleQuestionType)
		api.POST("/generate", s.GenerateJSON)
		api.GET("/worksheet", s.GetWorksheet)
	}

	return router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("web server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if _, err := c.Cookie(sessionCookie); err != nil {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(sessionCookie, s.session, 0, "/", "", false, true)
		}
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// worksheet returns the last generated worksheet, or nil.
func (s *Server) worksheet() *worksheet.Worksheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Server) setResult(ws *worksheet.Worksheet, flash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws != nil {
		s.current = ws
	}
	s.flash = flash
	s.notice = ""
}

// clearResult withdraws the current worksheet.
func (s *Server) clearResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *Server) setMessages(flash, notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = flash
	s.notice = notice
}

// takeMessages returns and clears the messages for the next page view.
func (s *Server) takeMessages() (flash, notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flash, notice = s.flash, s.notice
	s.flash, s.notice = "", ""
	return flash, notice
}
