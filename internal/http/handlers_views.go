package http

import (
	"net/http"
	"strings"

	"trainlog/internal/report"
)

// View endpoints recompute from the live collections on every request; there
// is no cached aggregate to invalidate.

const recentRecords = 10

func (s *Server) handleDashboardView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, report.Dashboard(s.store.ListTrainingRecords(), recentRecords))
}

func (s *Server) handleRecordsView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	records := s.store.ListTrainingRecords()
	respondJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) handlePlanningView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	year, month := parseYearMonth(r)
	respondJSON(w, http.StatusOK, report.Planning(s.store.ListPlans(), year, month))
}

func (s *Server) handleWeeklyView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, report.Weekly(s.store.ListTrainingRecords()))
}

func (s *Server) handleMonthlyView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, report.Monthly(s.store.ListTrainingRecords()))
}

func (s *Server) handleFiscalView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	fy := strings.TrimSpace(r.URL.Query().Get("fy"))
	respondJSON(w, http.StatusOK, report.Fiscal(s.store.ListTrainingRecords(), s.store.ListPlans(), fy))
}

func (s *Server) handleTrainersView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, report.Trainers(s.store.ListTrainingRecords()))
}
