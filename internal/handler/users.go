package handler

import (
	"errors"
	"net/http"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/state"
	"github.com/circussync/backend/internal/store"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "profile loaded", myInfo)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Name     *string `json:"name"`
		PhotoURL *string `json:"photoURL"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.PhotoURL != nil {
		patch["photoURL"] = *req.PhotoURL
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	if err := h.services.Users.Update(r.Context(), myInfo.ID, patch); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	updated, err := h.services.Users.Get(r.Context(), myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "profile updated", updated)
}

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "theme loaded", h.theme.Theme())
}

func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme" validate:"required,oneof=light dark"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.theme.Set(r.Context(), state.Theme(req.Theme)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "theme updated", h.theme.Theme())
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.theme.Toggle(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "theme updated", h.theme.Theme())
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.Users.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "users loaded", users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "user loaded", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Name     *string `json:"name"`
		PhotoURL *string `json:"photoURL"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.PhotoURL != nil {
		patch["photoURL"] = *req.PhotoURL
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	if err := h.services.Users.Update(r.Context(), user.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Users.Get(r.Context(), user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user updated", updated)
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Role string `json:"role" validate:"required,oneof=readonly performer manager admin"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.Users.Update(r.Context(), user.ID, map[string]any{"role": req.Role}); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Users.Get(r.Context(), user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "role updated", updated)
}
