package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxBodySize caps request bodies; CSV imports are the largest legitimate
// payload and stay well under this.
const maxBodySize = 8 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// requireUser rejects requests made before a successful login.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) bool {
	if s.store.User() == "" {
		respondError(w, http.StatusForbidden, "login required")
		return false
	}
	return true
}

// requireConfirm gates destructive operations behind an explicit
// confirm=true query parameter. Without it the request is rejected and
// nothing changes.
func requireConfirm(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusConflict, "confirmation required: retry with confirm=true")
		return false
	}
	return true
}

// idFromPath extracts the trailing identifier from a prefixed route.
func idFromPath(r *http.Request, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(r.URL.Path, prefix))
}

// parseYearMonth extracts year and month from query parameters, defaulting to
// the current month. An out-of-range month falls back to the current one.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}

	return year, month
}
