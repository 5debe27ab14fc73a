package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

func (h *Handler) GetAllAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.services.Agents.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agents loaded", agents)
}

func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var agent domain.Agent

	if err := h.readJSON(r, &agent); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if agent.Name == "" {
		h.errorResponse(w, r, "agent name is required")
		return
	}

	id, err := h.services.Agents.Add(r.Context(), &agent)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Agents.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agent created", created)
}

func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtx).(*domain.Agent)
	h.successResponse(w, r, "agent loaded", agent)
}

func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtx).(*domain.Agent)

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	if err := h.services.Agents.Update(r.Context(), agent.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "agent not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Agents.Get(r.Context(), agent.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agent updated", updated)
}

func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtx).(*domain.Agent)

	if err := h.services.Agents.Delete(r.Context(), agent.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "agent not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "agent deleted", nil)
}

func (h *Handler) GetAgentsBySpecialization(w http.ResponseWriter, r *http.Request) {
	specialization := chi.URLParam(r, "specialization")
	if specialization == "" {
		h.errorResponse(w, r, "missing specialization")
		return
	}

	agents, err := h.services.Agents.GetBySpecialization(r.Context(), specialization)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agents loaded", agents)
}
