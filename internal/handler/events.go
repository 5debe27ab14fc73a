package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

const defaultUpcomingEventsLimit = 10

func (h *Handler) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.services.Events.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.Event

	if err := h.readJSON(r, &event); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if event.Name == "" {
		h.errorResponse(w, r, "event name is required")
		return
	}
	if event.Date.IsZero() {
		h.errorResponse(w, r, "event date is required")
		return
	}
	if event.Status != "" && !event.Status.Valid() {
		h.errorResponse(w, r, "invalid event status")
		return
	}

	id, err := h.services.Events.Add(r.Context(), &event)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Events.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "event created", created)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event := r.Context().Value(EventCtx).(*domain.Event)
	h.successResponse(w, r, "event loaded", event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	event := r.Context().Value(EventCtx).(*domain.Event)

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}
	if status, ok := patch["status"].(string); ok && !domain.EventStatus(status).Valid() {
		h.errorResponse(w, r, "invalid event status")
		return
	}

	if err := h.services.Events.Update(r.Context(), event.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "event not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Events.Get(r.Context(), event.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "event updated", updated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event := r.Context().Value(EventCtx).(*domain.Event)

	if err := h.services.Events.Delete(r.Context(), event.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "event not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "event deleted", nil)
}

func (h *Handler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultUpcomingEventsLimit
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	events, err := h.services.Events.GetUpcoming(r.Context(), limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}

func (h *Handler) GetEventsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.EventStatus(chi.URLParam(r, "status"))
	if !status.Valid() {
		h.errorResponse(w, r, "invalid event status")
		return
	}

	events, err := h.services.Events.GetByStatus(r.Context(), status)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}

func (h *Handler) GetEventsInRange(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	start, err := time.Parse("2006-01-02", startParam)
	if err != nil {
		h.errorResponse(w, r, "invalid start parameter")
		return
	}
	end, err := time.Parse("2006-01-02", endParam)
	if err != nil {
		h.errorResponse(w, r, "invalid end parameter")
		return
	}
	if end.Before(start) {
		h.errorResponse(w, r, "end must not be before start")
		return
	}

	events, err := h.services.Events.GetInDateRange(r.Context(), start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}

func (h *Handler) GetEventPerformers(w http.ResponseWriter, r *http.Request) {
	event := r.Context().Value(EventCtx).(*domain.Event)

	performers, err := h.services.Events.ResolvePerformers(r.Context(), event)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performers loaded", performers)
}
