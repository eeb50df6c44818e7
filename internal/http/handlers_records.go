package http

import (
	"net/http"

	"trainlog/internal/core"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !s.requireUser(w, r) {
			return
		}
		respondJSON(w, http.StatusOK, s.store.ListTrainingRecords())
	case http.MethodPost:
		s.createRecord(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireUser(w, r) {
		return
	}

	var rec core.TrainingRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := rec.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.store.Add(r.Context(), rec)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRecordByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireUser(w, r) {
		return
	}

	id := idFromPath(r, "/api/records/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing record id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, ok := s.store.FindByID(id)
		if !ok {
			respondError(w, http.StatusNotFound, "record not found")
			return
		}
		respondJSON(w, http.StatusOK, rec)

	case http.MethodPut:
		var rec core.TrainingRecord
		if err := decodeJSON(r, &rec); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec.ID = id
		if err := rec.Validate(); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updated, ok := s.store.Update(r.Context(), rec)
		if !ok {
			respondError(w, http.StatusNotFound, "record not found")
			return
		}
		respondJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if !requireConfirm(w, r) {
			return
		}
		s.store.Remove(r.Context(), id)
		respondJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
