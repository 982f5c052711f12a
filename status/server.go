package status

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server exposes a Registry over HTTP
//
//	GET /healthz  liveness
//	GET /status   session, uptime and every metric as JSON
type Server struct {
	reg     *Registry
	session string
	started time.Time
	srv     *http.Server
	ln      net.Listener
}

// Report is the /status body
type Report struct {
	Session string         `json:"session"`
	Uptime  float64        `json:"uptime_seconds"`
	Metrics map[string]any `json:"metrics"`
}

func NewServer(addr string, reg *Registry) *Server {
	s := &Server{
		reg:     reg,
		session: uuid.New().String(),
		started: time.Now(),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Session identifies this viewer run
func (s *Server) Session() string {
	return s.session
}

// Handler builds the router; usable without Start in tests
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/status", s.status)
	return r
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	rep := Report{
		Session: s.session,
		Uptime:  time.Since(s.started).Seconds(),
		Metrics: s.reg.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		log.Printf("status: encode: %v", err)
	}
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	log.Printf("status: listening on http://%s (session %s)", ln.Addr(), s.session)

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("status: serve: %v", err)
		}
	}()
	return nil
}

// Addr is the bound address once started
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.srv.Addr
	}
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// shutdownTimeout bounds Stop
const shutdownTimeout = 2 * time.Second

// Name implements service.Service
func (s *Server) Name() string {
	return "status"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Stop implements service.Service
func (s *Server) Stop() error {
	if s.ln == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.Shutdown(ctx)
	s.ln = nil
	return err
}
