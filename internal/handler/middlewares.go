package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/circussync/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			h.errorResponse(w, r, "not signed in")
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, EmailCtxKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := r.Context().Value(SubCtxKey).(string)

		myInfo, err := h.services.Users.Get(r.Context(), sub)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if myInfo == nil {
			h.errorResponse(w, r, "profile not found")
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits any session whose role ranks at least as high as min.
func (h *Handler) RequireRole(min domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !role.Valid() || role.Rank() < min.Rank() {
				h.errorResponse(w, r, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) userCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")

		user, err := h.services.Users.Get(r.Context(), userID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if user == nil {
			h.errorResponse(w, r, "user not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) clientCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "id")

		client, err := h.services.Clients.Get(r.Context(), clientID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if client == nil {
			h.errorResponse(w, r, "client not found")
			return
		}

		ctx := context.WithValue(r.Context(), ClientCtx, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) performerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		performerID := chi.URLParam(r, "id")

		performer, err := h.services.Performers.Get(r.Context(), performerID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if performer == nil {
			h.errorResponse(w, r, "performer not found")
			return
		}

		ctx := context.WithValue(r.Context(), PerformerCtx, performer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) eventCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "id")

		event, err := h.services.Events.Get(r.Context(), eventID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if event == nil {
			h.errorResponse(w, r, "event not found")
			return
		}

		ctx := context.WithValue(r.Context(), EventCtx, event)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) agentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentID := chi.URLParam(r, "id")

		agent, err := h.services.Agents.Get(r.Context(), agentID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if agent == nil {
			h.errorResponse(w, r, "agent not found")
			return
		}

		ctx := context.WithValue(r.Context(), AgentCtx, agent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) taskCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		task, err := h.services.Tasks.Get(r.Context(), taskID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if task == nil {
			h.errorResponse(w, r, "task not found")
			return
		}

		ctx := context.WithValue(r.Context(), TaskCtx, task)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) documentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		documentID := chi.URLParam(r, "id")

		document, err := h.services.Documents.Get(r.Context(), documentID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if document == nil {
			h.errorResponse(w, r, "document not found")
			return
		}

		ctx := context.WithValue(r.Context(), DocumentCtx, document)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
