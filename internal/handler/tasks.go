package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

const defaultUpcomingTasksDays = 7

// canTouchTask admits managers and the assignee.
func canTouchTask(r *http.Request, task *domain.Task) bool {
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))
	if role.Valid() && role.Rank() >= domain.RoleManager.Rank() {
		return true
	}
	return task.AssignedTo == r.Context().Value(SubCtxKey).(string)
}

func (h *Handler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(string)

	tasks, err := h.services.Tasks.GetByUser(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tasks loaded", tasks)
}

func (h *Handler) GetMyUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(string)

	days := defaultUpcomingTasksDays
	if param := r.URL.Query().Get("days"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "invalid days parameter")
			return
		}
		days = parsed
	}

	tasks, err := h.services.Tasks.GetUpcoming(r.Context(), sub, days)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tasks loaded", tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task domain.Task

	if err := h.readJSON(r, &task); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if task.Description == "" {
		h.errorResponse(w, r, "task description is required")
		return
	}
	if task.DueDate.IsZero() {
		h.errorResponse(w, r, "task due date is required")
		return
	}
	if task.AssignedTo == "" {
		h.errorResponse(w, r, "task assignee is required")
		return
	}

	id, err := h.services.Tasks.Add(r.Context(), &task)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Tasks.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "task created", created)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	if !canTouchTask(r, task) {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	if err := h.services.Tasks.Update(r.Context(), task.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "task not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Tasks.Get(r.Context(), task.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "task updated", updated)
}

func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	if !canTouchTask(r, task) {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	if err := h.services.Tasks.Update(r.Context(), task.ID, map[string]any{"completed": true}); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "task not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "task completed", nil)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	if err := h.services.Tasks.Delete(r.Context(), task.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "task not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "task deleted", nil)
}
