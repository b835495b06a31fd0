package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/railpath-hq/railrouter/pkg/circuitbreaker"
	"github.com/railpath-hq/railrouter/pkg/logger"
	"github.com/railpath-hq/railrouter/pkg/rails"
)

// Server exposes the router's operational surface: liveness, readiness,
// per-rail status, breaker admin and Prometheus metrics.
type Server struct {
	port          string
	catalog       *rails.Catalog
	breakers      *circuitbreaker.Registry
	metricsAPIKey string
	logger        logger.Logger
}

// NewServer creates a new operational server.
func NewServer(port string, catalog *rails.Catalog, breakers *circuitbreaker.Registry, log logger.Logger) *Server {
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &Server{
		port:          port,
		catalog:       catalog,
		breakers:      breakers,
		metricsAPIKey: os.Getenv("METRICS_API_KEY"),
		logger:        log,
	}
}

// metricsAuthMiddleware is a middleware that checks for a valid API key
func (s *Server) metricsAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if no API key is configured
		if s.metricsAPIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		if parts[1] != s.metricsAPIKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if s.catalog == nil || s.catalog.Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Rail catalog not configured"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	})

	// Per-rail status endpoint
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]interface{})

		for _, rail := range s.catalog.Rails() {
			circuitStatus := "closed"
			if s.breakers.IsOpen(rail.ID) {
				circuitStatus = "open"
			}
			failures, lastFailure := s.breakers.State(rail.ID)

			railStatus := map[string]interface{}{
				"category":    string(rail.Category),
				"cost":        rail.Cost.String(),
				"latency":     rail.SettlementLatency.String(),
				"reliability": rail.Reliability,
				"circuit":     circuitStatus,
				"failures":    failures,
			}
			if !lastFailure.IsZero() {
				railStatus["last_failure"] = lastFailure.Format(time.RFC3339)
			}
			status[fmt.Sprintf("rail_%s", rail.ID)] = railStatus
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			s.logger.Error("Error encoding status JSON: %v", err)
		}
	})

	// Circuit breaker admin control endpoint
	mux.HandleFunc("/circuit/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		railID := r.URL.Query().Get("rail")
		if railID == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Missing rail parameter"))
			return
		}
		if _, ok := s.catalog.Get(railID); !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(fmt.Sprintf("Unknown rail: %s", railID)))
			return
		}

		s.breakers.Reset(railID)
		s.logger.Notice("Circuit breaker manually reset for rail %s", railID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(fmt.Sprintf("Circuit reset for rail %s", railID)))
	})

	mux.Handle("/metrics", s.metricsAuthMiddleware(promhttp.Handler()))

	return mux
}

// Start starts the operational server. It blocks until the listener fails.
func (s *Server) Start() {
	s.logger.Info("Operational server listening on :%s", s.port)
	if err := http.ListenAndServe(":"+s.port, s.Handler()); err != nil {
		s.logger.Error("Operational server stopped: %v", err)
	}
}
