package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

// DefaultMaxBody caps request bodies at 64 MiB.
const DefaultMaxBody = 64 << 20

// DefaultSearchTimeout bounds a single search request.
const DefaultSearchTimeout = 5 * time.Minute

// Limits caps the search parameters a request may ask for. The search
// context is only checked between restarts, so these bound the work done
// after Timeout expires. A zero field disables that cap.
type Limits struct {
	Restarts   int
	SwapBudget int
	Trials     int
	TabuSize   int
}

// DefaultLimits keeps one restart on a benchmark-sized graph well under a
// second.
var DefaultLimits = Limits{
	Restarts:   10_000,
	SwapBudget: 10_000,
	Trials:     100,
	TabuSize:   1_000,
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Runner  *pipeline.Runner
	Logger  *log.Logger
	MaxBody int64
	Limits  Limits

	// Timeout is checked between restarts; a timed out search responds
	// with the partial result and "partial": true. The restart running when
	// it expires finishes first.
	Timeout time.Duration
}

// NewServer creates a server backed by runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner:  runner,
		Logger:  logger,
		MaxBody: DefaultMaxBody,
		Limits:  DefaultLimits,
		Timeout: DefaultSearchTimeout,
	}
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/verify", s.handleVerify)
		r.Get("/runs", s.handleRuns)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.Logger, notFound(r.URL.Path))
	})
	return r
}
