package http

import (
	"log/slog"
	"net/http"
	"strings"

	"trainlog/internal/csvio"
	"trainlog/internal/log"
	"trainlog/internal/middleware/trace"
)

type loginRequest struct {
	Name string `json:"name"`
}

// handleLogin checks the operator allow-list and initializes the session
// store. Login is case-insensitive; the configured spelling wins.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	canonical, ok := s.operators[strings.ToLower(name)]
	if name == "" || !ok {
		slog.WarnContext(r.Context(), "Login rejected",
			log.FieldUser, name,
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, trace.GetRequestID(r.Context()))
		respondError(w, http.StatusForbidden, "unknown operator")
		return
	}

	s.store.Initialize(r.Context(), canonical, s.roster)
	respondJSON(w, http.StatusOK, map[string]string{"user": canonical})
}

// handleImport replaces the whole training collection from an uploaded CSV.
// The import is confirm-gated and every row is re-attributed to the acting
// user.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !s.requireUser(w, r) {
		return
	}
	if !requireConfirm(w, r) {
		return
	}

	records, err := csvio.ReadRecords(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		slog.WarnContext(r.Context(), "Import rejected",
			log.FieldError, err.Error(),
			log.FieldComponent, log.ComponentHTTP,
			log.FieldOperation, log.OpImport,
			log.FieldRequestID, trace.GetRequestID(r.Context()))
		respondError(w, http.StatusUnprocessableEntity, "malformed csv: "+err.Error())
		return
	}

	n := s.store.ImportBulk(r.Context(), records)
	respondJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// handleExport streams the training collection as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireUser(w, r) {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="training_records.csv"`)
	if err := csvio.WriteRecords(w, s.store.ListTrainingRecords()); err != nil {
		slog.ErrorContext(r.Context(), "Export failed",
			log.FieldError, err.Error(),
			log.FieldComponent, log.ComponentHTTP,
			log.FieldOperation, log.OpExport,
			log.FieldRequestID, trace.GetRequestID(r.Context()))
	}
}
