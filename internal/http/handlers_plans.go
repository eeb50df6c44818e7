package http

import (
	"net/http"

	"trainlog/internal/core"
)

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !s.requireUser(w, r) {
			return
		}
		respondJSON(w, http.StatusOK, s.store.ListPlans())
	case http.MethodPost:
		s.createPlan(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	if !s.requireUser(w, r) {
		return
	}

	var p core.PlannedSession
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Status == "" {
		p.Status = core.StatusPlanned
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.store.AddPlan(r.Context(), p)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePlanByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireUser(w, r) {
		return
	}

	id := idFromPath(r, "/api/plans/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing plan id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, ok := s.store.FindPlanByID(id)
		if !ok {
			respondError(w, http.StatusNotFound, "plan not found")
			return
		}
		respondJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var p core.PlannedSession
		if err := decodeJSON(r, &p); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p.ID = id
		if err := p.Validate(); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updated, ok := s.store.UpdatePlan(r.Context(), p)
		if !ok {
			respondError(w, http.StatusNotFound, "plan not found")
			return
		}
		respondJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if !requireConfirm(w, r) {
			return
		}
		s.store.DeletePlan(r.Context(), id)
		respondJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
