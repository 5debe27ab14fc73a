package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/circussync/backend/internal/auth"
	"github.com/circussync/backend/internal/config"
	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
	"github.com/circussync/backend/internal/state"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	services    *service.Service
	provider    auth.Provider
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	theme       *state.ThemeStore

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, services *service.Service, provider auth.Provider, mailCh *amqp.Channel, rdb *redis.Client, theme *state.ThemeStore) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		services:    services,
		provider:    provider,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		theme:       theme,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/register", h.Register)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a signed-in session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.session)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/", h.UpdateMyProfile)
			r.Route("/theme", func(r chi.Router) {
				r.Get("/", h.GetTheme)
				r.Put("/", h.SetTheme)
				r.Post("/toggle", h.ToggleTheme)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequireRole(domain.RoleManager)).Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userCtx)
				r.Get("/", h.GetUser)
				r.With(h.RequireRole(domain.RoleAdmin)).Patch("/", h.UpdateUser)
				r.With(h.RequireRole(domain.RoleAdmin)).Patch("/role", h.UpdateUserRole)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.GetAllClients)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateClient)
			r.Get("/search", h.SearchClients)
			r.Get("/follow-up", h.GetFollowUpClients)
			r.Get("/status/{status}", h.GetClientsByStatus)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.clientCtx)
				r.Get("/", h.GetClient)
				r.With(h.RequireRole(domain.RoleManager)).Patch("/", h.UpdateClient)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeleteClient)
				r.Get("/events", h.GetClientEvents)
				r.With(h.RequireRole(domain.RoleManager)).Post("/follow-up-reminder", h.SendFollowUpReminder)
			})
		})

		r.Route("/performers", func(r chi.Router) {
			r.Get("/", h.GetAllPerformers)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreatePerformer)
			r.Get("/skill/{category}", h.GetPerformersBySkill)
			r.Get("/available", h.GetAvailablePerformers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.performerCtx)
				r.Get("/", h.GetPerformer)
				r.With(h.RequireRole(domain.RoleManager)).Patch("/", h.UpdatePerformer)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeletePerformer)
				r.With(h.RequireRole(domain.RolePerformer)).Put("/availability", h.UpdatePerformerAvailability)
				r.Get("/events", h.GetPerformerEvents)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.GetAllEvents)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateEvent)
			r.Get("/upcoming", h.GetUpcomingEvents)
			r.Get("/range", h.GetEventsInRange)
			r.Get("/status/{status}", h.GetEventsByStatus)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.eventCtx)
				r.Get("/", h.GetEvent)
				r.With(h.RequireRole(domain.RoleManager)).Patch("/", h.UpdateEvent)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeleteEvent)
				r.Get("/performers", h.GetEventPerformers)
			})
		})

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", h.GetAllAgents)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateAgent)
			r.Get("/specialization/{specialization}", h.GetAgentsBySpecialization)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.agentCtx)
				r.Get("/", h.GetAgent)
				r.With(h.RequireRole(domain.RoleManager)).Patch("/", h.UpdateAgent)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeleteAgent)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.GetMyTasks)
			r.Get("/upcoming", h.GetMyUpcomingTasks)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.taskCtx)
				r.Patch("/", h.UpdateTask)
				r.Post("/complete", h.CompleteTask)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeleteTask)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.GetMyNotifications)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateNotification)
			r.Post("/{id}/read", h.MarkNotificationRead)
			r.Delete("/{id}", h.DeleteNotification)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.GetAllDocuments)
			r.With(h.RequireRole(domain.RoleManager)).Post("/", h.CreateDocument)
			r.Get("/related/{type}/{id}", h.GetDocumentsByRelatedEntity)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.documentCtx)
				r.Get("/", h.GetDocument)
				r.With(h.RequireRole(domain.RoleManager)).Patch("/", h.UpdateDocument)
				r.With(h.RequireRole(domain.RoleManager)).Delete("/", h.DeleteDocument)
			})
		})
	})
}
