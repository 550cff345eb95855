// Package server exposes the compiler over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Tani1964/compiler-api/pkg/compiler"
)

// GreetingMessage is served by /api/message.
const GreetingMessage = "Hello from the compiler backend!"

// maxBodyBytes caps the size of a compile request body.
const maxBodyBytes = 1 << 20

var (
	ErrMissingText = errors.New("missing or empty \"text\" field")
	ErrBadRequest  = errors.New("malformed request body")
)

// Config holds the transport settings.
type Config struct {
	Addr     string
	Compiler compiler.Config
	// Logger receives one line per request; nil disables request logging.
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Addr:     ":5000",
		Compiler: compiler.DefaultConfig(),
		Logger:   log.Default(),
	}
}

// Server answers compile requests. One Compiler is shared by all requests;
// each request compiles with its own per-call state.
type Server struct {
	cfg      Config
	compiler *compiler.Compiler
	mux      *http.ServeMux
}

func New(cfg Config) *Server {
	s := &Server{
		cfg:      cfg,
		compiler: compiler.NewCompiler(cfg.Compiler),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/compiler", s.handleCompile)
	s.mux.HandleFunc("/api/message", s.handleMessage)
	return s
}

// Handler returns the root handler with CORS headers and request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h := rec.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			rec.WriteHeader(http.StatusNoContent)
		} else {
			s.mux.ServeHTTP(rec, r)
		}

		if s.cfg.Logger != nil {
			s.cfg.Logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
		}
	})
}

// ListenAndServe serves Handler on cfg.Addr until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.cfg.Logger != nil {
		s.cfg.Logger.Printf("listening on %s", s.cfg.Addr)
	}
	return srv.ListenAndServe()
}

type compileRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var text string
	switch r.Method {
	case http.MethodPost:
		t, err := decodeText(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		text = t
	case http.MethodGet:
		text = r.URL.Query().Get("text")
		if strings.TrimSpace(text) == "" {
			writeError(w, http.StatusBadRequest, ErrMissingText)
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	res, err := s.compiler.Compile(text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": GreetingMessage})
}

// decodeText reads the "text" field of a compile request.
func decodeText(body io.Reader) (string, error) {
	var req compileRequest
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		return "", ErrMissingText
	}
	return *req.Text, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
