package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

func (h *Handler) GetAllPerformers(w http.ResponseWriter, r *http.Request) {
	performers, err := h.services.Performers.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performers loaded", performers)
}

func (h *Handler) CreatePerformer(w http.ResponseWriter, r *http.Request) {
	var performer domain.Performer

	if err := h.readJSON(r, &performer); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if performer.Name == "" {
		h.errorResponse(w, r, "performer name is required")
		return
	}
	for _, skill := range performer.Skills {
		if !skill.Category.Valid() {
			h.errorResponse(w, r, "invalid skill category")
			return
		}
	}

	id, err := h.services.Performers.Add(r.Context(), &performer)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Performers.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performer created", created)
}

func (h *Handler) GetPerformer(w http.ResponseWriter, r *http.Request) {
	performer := r.Context().Value(PerformerCtx).(*domain.Performer)
	h.successResponse(w, r, "performer loaded", performer)
}

func (h *Handler) UpdatePerformer(w http.ResponseWriter, r *http.Request) {
	performer := r.Context().Value(PerformerCtx).(*domain.Performer)

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	if err := h.services.Performers.Update(r.Context(), performer.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "performer not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Performers.Get(r.Context(), performer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performer updated", updated)
}

func (h *Handler) DeletePerformer(w http.ResponseWriter, r *http.Request) {
	performer := r.Context().Value(PerformerCtx).(*domain.Performer)

	if err := h.services.Performers.Delete(r.Context(), performer.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "performer not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "performer deleted", nil)
}

func (h *Handler) GetPerformersBySkill(w http.ResponseWriter, r *http.Request) {
	category := domain.SkillCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		h.errorResponse(w, r, "invalid skill category")
		return
	}

	performers, err := h.services.Performers.GetBySkill(r.Context(), category)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performers loaded", performers)
}

func (h *Handler) GetAvailablePerformers(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		h.errorResponse(w, r, "missing date parameter")
		return
	}

	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "invalid date parameter")
		return
	}

	performers, err := h.services.Performers.GetAvailableForDate(r.Context(), date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "performers loaded", performers)
}

func (h *Handler) UpdatePerformerAvailability(w http.ResponseWriter, r *http.Request) {
	performer := r.Context().Value(PerformerCtx).(*domain.Performer)

	var req struct {
		Date   string `json:"date" validate:"required"`
		Status string `json:"status" validate:"required,oneof=available unavailable tentative"`
		Notes  string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.errorResponse(w, r, "invalid date")
		return
	}

	entry := domain.Availability{
		Date:   date,
		Status: domain.AvailabilityStatus(req.Status),
		Notes:  req.Notes,
	}

	if err := h.services.Performers.UpdateAvailability(r.Context(), performer.ID, entry); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "performer not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Performers.Get(r.Context(), performer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability updated", updated)
}

func (h *Handler) GetPerformerEvents(w http.ResponseWriter, r *http.Request) {
	performer := r.Context().Value(PerformerCtx).(*domain.Performer)

	events, err := h.services.Events.GetByPerformer(r.Context(), performer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}
