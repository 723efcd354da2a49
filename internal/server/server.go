// Package server exposes the rule engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dshills/cppscore/internal/config"
	"github.com/dshills/cppscore/internal/cppstd"
	"github.com/dshills/cppscore/internal/review"
	"github.com/dshills/cppscore/internal/simulate"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP adapter around an engine. It holds no per-request state.
type Server struct {
	engine *review.Engine
	cfg    config.Config
	logger *log.Logger
	mux    *http.ServeMux
}

// New builds a server. Missing version and compiler fields in requests fall
// back to cfg.Std and cfg.Compiler.
func New(engine *review.Engine, cfg config.Config, logger *log.Logger) *Server {
	s := &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	if cfg.Server.StaticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}
	return s
}

// Handler returns the server's routes wrapped in logging and CORS middleware.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.cors(s.mux))
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type analyzeRequest struct {
	Code     *string `json:"code"`
	Version  string  `json:"version"`
	Compiler string  `json:"compiler"`
}

type simulateRequest struct {
	Code *string `json:"code"`
}

type simulateResponse struct {
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if req.Code == nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing code"})
		return
	}
	if req.Version == "" {
		req.Version = s.cfg.Std
	}
	if req.Compiler == "" {
		req.Compiler = s.cfg.Compiler
	}

	res, err := s.engine.Evaluate(*req.Code, req.Version, req.Compiler)
	if err != nil {
		if errors.Is(err, cppstd.ErrInvalidVersion) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Unsupported version: " + req.Version})
			return
		}
		s.logger.Printf("analyze: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error"})
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if req.Code == nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing code"})
		return
	}
	s.writeJSON(w, http.StatusOK, simulateResponse{Output: simulate.Output(*req.Code)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(body).Decode(v)
}

// decodeRequest decodes the body into v and writes the error response on
// failure. An empty body decodes to the zero value.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	err := decode(w, r, v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
		})
		return false
	}
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON: " + err.Error()})
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}
