// Package server exposes the render engine over HTTP.
//
// Routes:
//
//	POST /v1/documents  JSON payload in, PDF out
//	GET  /healthz       liveness check
//
// Failures are answered with {"type":"error","message":...,"code":...} and a
// status derived from the error classification.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/config"
	"github.com/lvillar/docstamp/render"
)

// Server serves documents rendered by one engine.
type Server struct {
	engine *render.Engine
	cfg    config.Server
	logger *log.Logger
}

// New creates a Server. A nil logger discards output.
func New(engine *render.Engine, cfg config.Server, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{engine: engine, cfg: cfg, logger: logger}
}

// Routes returns the HTTP handler with middleware installed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, s.logRequests, s.recoverPanics)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/documents", s.handleRender)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Type: "error", Message: "no route for " + r.URL.Path, Code: "NOT_FOUND"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Type: "error", Message: r.Method + " not allowed on " + r.URL.Path, Code: "METHOD_NOT_ALLOWED"})
	})
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout.Duration)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Type:    "error",
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
				Code:    docstamp.CodeValidation,
			})
			return
		}
		s.fail(w, r, &docstamp.ValidationError{Reason: "reading request body: " + err.Error()})
		return
	}

	p, err := docstamp.DecodePayload(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pdf, err := s.engine.Render(p)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docstamp.Filename(p)))
	h.Set("Content-Length", strconv.Itoa(len(pdf)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Warn("writing response", "err", err, "request_id", RequestID(r.Context()))
	}
}

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Type    string        `json:"type"`
	Message string        `json:"message"`
	Code    docstamp.Code `json:"code"`
}

// StatusOf maps an error classification to an HTTP status.
func StatusOf(err error) int {
	switch docstamp.CodeOf(err) {
	case docstamp.CodeValidation:
		return http.StatusBadRequest
	case docstamp.CodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail answers with the classified error. Server-side failures are logged
// and reported without their internal detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusOf(err), docstamp.CodeOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err, "code", code, "request_id", RequestID(r.Context()))
		msg = "document could not be rendered"
	}
	writeJSON(w, status, errorBody{Type: "error", Message: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
