// Package http exposes the training log over a JSON API: login, record and
// plan CRUD, CSV import/export, and the reporting views.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"trainlog/internal/core"
	"trainlog/internal/middleware/ratelimit"
	"trainlog/internal/middleware/security"
	"trainlog/internal/middleware/trace"
	"trainlog/internal/store"
)

type Server struct {
	http.Server

	store  *store.Store
	roster core.Roster

	// Allow-list of operator names, keyed by lowercase for case-insensitive
	// login. Values keep the configured spelling.
	operators map[string]string

	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, st *store.Store, operators []string, roster core.Roster) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:     st,
		roster:    roster,
		operators: make(map[string]string, len(operators)),
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		started:   time.Now(),
	}
	for _, name := range operators {
		s.operators[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(name)
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/login", s.handleLogin)

	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/records/", s.handleRecordByID)
	mux.HandleFunc("/api/records/import", s.handleImport)
	mux.HandleFunc("/api/records/export", s.handleExport)

	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/plans/", s.handlePlanByID)

	mux.HandleFunc("/api/views/dashboard", s.handleDashboardView)
	mux.HandleFunc("/api/views/records", s.handleRecordsView)
	mux.HandleFunc("/api/views/planning", s.handlePlanningView)
	mux.HandleFunc("/api/views/weekly", s.handleWeeklyView)
	mux.HandleFunc("/api/views/monthly", s.handleMonthlyView)
	mux.HandleFunc("/api/views/fiscal", s.handleFiscalView)
	mux.HandleFunc("/api/views/trainers", s.handleTrainersView)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.tracer = trace.NewMiddleware(extractClientIP)
	s.Server.Handler = s.tracer.Middleware(headers.Middleware(s.rateLimitWrites(mux)))

	return s
}

// rateLimitWrites applies the per-client limiter to mutating requests only;
// reads stay unthrottled.
func (s *Server) rateLimitWrites(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(extractClientIP, nil)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			limited.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// extractClientIP resolves the client address, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	metrics := s.tracer.GetMetrics()
	checks := map[string]any{
		"rate_limiter": map[string]any{
			"active_clients": s.limiter.ActiveClients(),
			"status":         "ok",
		},
		"http": map[string]any{
			"total_requests":  metrics.TotalRequests,
			"avg_response_us": metrics.AverageResponseTime,
			"status":          "ok",
		},
	}

	if s.store == nil {
		checks["store"] = "failed: store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	if s.roster.Len() == 0 {
		checks["roster"] = "empty"
	} else {
		checks["roster"] = "ok"
	}

	respondJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
