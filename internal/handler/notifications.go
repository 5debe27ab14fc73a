package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

func (h *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(string)

	includeRead := r.URL.Query().Get("includeRead") == "true"

	notifications, err := h.services.Notifications.GetForUser(r.Context(), sub, includeRead)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "notifications loaded", notifications)
}

func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var notification domain.Notification

	if err := h.readJSON(r, &notification); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if notification.UserID == "" {
		h.errorResponse(w, r, "notification user is required")
		return
	}
	if notification.Message == "" {
		h.errorResponse(w, r, "notification message is required")
		return
	}

	id, err := h.services.Notifications.Add(r.Context(), &notification)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Notifications.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "notification created", created)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notification, err := h.services.Notifications.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if notification == nil {
		h.errorResponse(w, r, "notification not found")
		return
	}
	if notification.UserID != r.Context().Value(SubCtxKey).(string) {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	if err := h.services.Notifications.MarkAsRead(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "notification not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "notification marked as read", nil)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notification, err := h.services.Notifications.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if notification == nil {
		h.errorResponse(w, r, "notification not found")
		return
	}
	if notification.UserID != r.Context().Value(SubCtxKey).(string) {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	if err := h.services.Notifications.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "notification not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "notification deleted", nil)
}
