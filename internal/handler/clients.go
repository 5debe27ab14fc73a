package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

const defaultFollowUpWindowDays = 7

func (h *Handler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.services.Clients.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clients loaded", clients)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client domain.Client

	if err := h.readJSON(r, &client); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if client.Name == "" {
		h.errorResponse(w, r, "client name is required")
		return
	}
	if client.Status != "" && !client.Status.Valid() {
		h.errorResponse(w, r, "invalid client status")
		return
	}

	id, err := h.services.Clients.Add(r.Context(), &client)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Clients.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "client created", created)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)
	h.successResponse(w, r, "client loaded", client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}
	if status, ok := patch["status"].(string); ok && !domain.ClientStatus(status).Valid() {
		h.errorResponse(w, r, "invalid client status")
		return
	}

	if err := h.services.Clients.Update(r.Context(), client.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Clients.Get(r.Context(), client.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "client updated", updated)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	if err := h.services.Clients.Delete(r.Context(), client.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "client deleted", nil)
}

func (h *Handler) GetClientsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.ClientStatus(chi.URLParam(r, "status"))
	if !status.Valid() {
		h.errorResponse(w, r, "invalid client status")
		return
	}

	clients, err := h.services.Clients.GetByStatus(r.Context(), status)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clients loaded", clients)
}

func (h *Handler) GetFollowUpClients(w http.ResponseWriter, r *http.Request) {
	days := defaultFollowUpWindowDays
	if param := r.URL.Query().Get("days"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "invalid days parameter")
			return
		}
		days = parsed
	}

	clients, err := h.services.Clients.GetForFollowUp(r.Context(), days)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clients loaded", clients)
}

func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		h.errorResponse(w, r, "missing search term")
		return
	}

	clients, err := h.services.Clients.Search(r.Context(), term)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clients loaded", clients)
}

func (h *Handler) GetClientEvents(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	events, err := h.services.Events.GetByClient(r.Context(), client.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "events loaded", events)
}

// SendFollowUpReminder mails the signed-in manager the client's pending
// follow-up task.
func (h *Handler) SendFollowUpReminder(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	if client.NextFollowUp == nil || client.NextFollowUp.Date == nil {
		h.errorResponse(w, r, "no follow-up scheduled for this client")
		return
	}

	sub := r.Context().Value(SubCtxKey).(string)
	user, err := h.services.Users.Get(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if user == nil {
		h.errorResponse(w, r, "profile not found")
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "follow_up",
		To:   user.Email,
		Data: domain.FollowUpMailData{
			Name:       user.Name,
			ClientName: client.Name,
			Task:       client.NextFollowUp.Task,
			Date:       client.NextFollowUp.Date.Format("2006-01-02"),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "follow-up reminder sent", nil)
}
