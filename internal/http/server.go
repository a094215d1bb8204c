// Package http exposes the dashboard API: spreadsheet upload, the latest
// parsed report, the per-account notes listings, and the optional Google
// Sheets pull.
package http

import (
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"leadlens/internal/ingest"
	"leadlens/internal/log"
	"leadlens/internal/metrics"
	"leadlens/internal/middleware/ratelimit"
	"leadlens/internal/middleware/security"
	"leadlens/internal/middleware/trace"
	"leadlens/internal/notes"
	"leadlens/internal/sheets"
	"leadlens/web"
)

// Server holds the handlers and their collaborators.
type Server struct {
	pipeline *ingest.Pipeline
	notesA   *notes.Store
	notesB   *notes.Store
	source   sheets.Source
	recorder *metrics.Recorder
	limiter  *ratelimit.Limiter
	logger   *log.Logger

	maxUploadBytes int64

	mu     sync.RWMutex
	latest *ingest.Payload
}

type ServerOption func(*Server)

// WithSource wires the optional Google Sheets pull source.
func WithSource(src sheets.Source) ServerOption {
	return func(s *Server) { s.source = src }
}

func WithRecorder(r *metrics.Recorder) ServerOption {
	return func(s *Server) { s.recorder = r }
}

func WithRateLimiter(l *ratelimit.Limiter) ServerOption {
	return func(s *Server) { s.limiter = l }
}

func WithMaxUploadBytes(n int64) ServerOption {
	return func(s *Server) { s.maxUploadBytes = n }
}

func NewServer(pipeline *ingest.Pipeline, notesA, notesB *notes.Store, logger *log.Logger, opts ...ServerOption) *Server {
	s := &Server{
		pipeline:       pipeline,
		notesA:         notesA,
		notesB:         notesB,
		logger:         logger.WithComponent(log.ComponentHTTP),
		maxUploadBytes: 20 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router assembles the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(clientIP)
	r.Use(headers.Middleware)
	r.Use(tracer.Middleware)
	r.Use(log.Middleware(s.logger))

	r.Route("/api", func(r chi.Router) {
		upload := http.HandlerFunc(s.handleUpload)
		if s.limiter != nil {
			r.With(s.limiter.Middleware(clientIP, nil)).Post("/upload", upload)
		} else {
			r.Post("/upload", upload)
		}
		r.Get("/report", s.handleReport)
		r.Get("/notes/{account}", s.handleNotes)
		r.Get("/pull", s.handlePull)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	if s.recorder != nil {
		r.Method(http.MethodGet, "/metrics", s.recorder.Handler())
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/*", http.FileServer(http.FS(static)))
	}

	return r
}

// handleUpload parses a multipart spreadsheet upload and returns the
// assembled payload. Unreadable files get 422 with a structured error.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	// FormFile reads the whole multipart body, so the size cap surfaces
	// here rather than on the later reads.
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "missing file", "multipart form must carry a 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "read upload", err.Error())
		return
	}

	res, err := s.pipeline.ParseUpload(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, ingest.ErrUnreadable) {
			writeError(w, http.StatusUnprocessableEntity, "unreadable file", "the upload is neither a valid xlsx workbook nor a readable CSV")
			return
		}
		writeError(w, http.StatusInternalServerError, "parse upload", err.Error())
		return
	}

	s.setLatest(res.Payload)
	writeJSON(w, http.StatusOK, res.Payload)
}

// handleReport returns the most recently parsed payload; last writer wins.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		writeError(w, http.StatusNotFound, "no report", "no upload has been parsed yet")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	var store *notes.Store
	switch chi.URLParam(r, "account") {
	case "a":
		store = s.notesA
	case "b":
		store = s.notesB
	default:
		writeError(w, http.StatusNotFound, "unknown account", "account must be 'a' or 'b'")
		return
	}
	writeJSON(w, http.StatusOK, store.GetData())
}

// handlePull fetches the configured Google spreadsheet and runs it through
// the same dataset stages as an upload.
func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusNotImplemented, "no pull source", "GOOGLE_SPREADSHEET_ID is not configured")
		return
	}

	table, err := s.source.Fetch(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Spreadsheet pull failed",
			log.FieldOperation, log.OpFetch,
			log.FieldError, err.Error())
		writeError(w, http.StatusBadGateway, "pull spreadsheet", err.Error())
		return
	}

	res := s.pipeline.ParseTable(r.Context(), "google-sheets", table)
	s.setLatest(res.Payload)
	writeJSON(w, http.StatusOK, res.Payload)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "not ready", "pipeline not initialized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) setLatest(p ingest.Payload) {
	s.mu.Lock()
	s.latest = &p
	s.mu.Unlock()
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
