package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/circussync/backend/internal/auth"
	"github.com/circussync/backend/internal/config"
	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/handler"
	"github.com/circussync/backend/internal/service"
	"github.com/circussync/backend/internal/state"
	"github.com/circussync/backend/internal/store"
	"github.com/circussync/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", "error", err)
		return
	}

	/**********************************************
	 * storage backend
	 **********************************************/
	var st store.Store

	switch cfg.Store.Driver {
	case "memory":
		st = store.NewMemory()
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			logger.Error("unable to create database pool", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open does not connect, ping to make sure the DSN works
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("unable to connect to database", "error", err)
			return
		}

		pg := store.NewPostgres(dbpool, time.Duration(cfg.Database.QueryTimeout)*time.Second)
		if err := pg.Init(ctx); err != nil {
			logger.Error("unable to initialize database schema", "error", err)
			return
		}
		st = pg
	default:
		logger.Error("unknown store driver", "driver", cfg.Store.Driver)
		return
	}

	/**********************************************
	 * services
	 **********************************************/
	services := service.New(st)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open channel", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare queue", "error", err)
		return
	}

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * auth provider
	 **********************************************/
	provider := auth.NewStoreProvider(st, resetSender(cfg, ch, rdb))

	/**********************************************
	 * make sure the initial admin exists
	 **********************************************/
	if err := bootstrapInitialAdmin(cfg, provider, services); err != nil {
		logger.Error("unable to create initial admin", "error", err)
		return
	}

	/**********************************************
	 * shared theme preference
	 **********************************************/
	theme := state.NewThemeStore(state.NewRedisPreferences(rdb))

	themeCtx, cancelTheme := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.OperationTimeout)*time.Second)
	defer cancelTheme()

	if err := theme.Load(themeCtx); err != nil {
		// the default theme still works without redis, keep going
		logger.Warn("unable to load theme preference", "error", err)
	}

	/**********************************************
	 * handler
	 **********************************************/
	h, err := handler.NewHandler(cfg, services, provider, ch, rdb, theme)
	if err != nil {
		logger.Error("unable to create handler", "error", err)
		return
	}
	h.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("unable to start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

// resetSender wires the provider's password reset hook to the same OTP and
// mail flow the HTTP endpoints use.
func resetSender(cfg *config.Config, ch *amqp.Channel, rdb *redis.Client) auth.ResetSender {
	return func(ctx context.Context, identity auth.Identity) error {
		otp := utils.GenerateRandomOTP()

		opCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Redis.OperationTimeout)*time.Second)
		defer cancel()

		key := fmt.Sprintf("otp_%s_reset_password", identity.Email)
		if err := rdb.Set(opCtx, key, otp, time.Duration(cfg.OTP.Expiration)*time.Second).Err(); err != nil {
			return err
		}

		mailData, err := json.Marshal(domain.MailMessage{
			Type: "reset_password",
			To:   identity.Email,
			Data: domain.ResetPasswordMailData{
				Name:       identity.Name,
				OTP:        otp,
				Expiration: cfg.OTP.Expiration / 60,
			},
		})
		if err != nil {
			return err
		}

		pubCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
		defer cancel()

		return ch.PublishWithContext(
			pubCtx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
	}
}

func bootstrapInitialAdmin(cfg *config.Config, provider *auth.StoreProvider, services *service.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := provider.Register(ctx, cfg.InitialAdmin.Email, cfg.InitialAdmin.Password, cfg.InitialAdmin.Name)
	if err != nil && !errors.Is(err, auth.ErrEmailInUse) {
		return err
	}
	// registering signs the bootstrap account in on the provider, drop that
	if err == nil {
		if err := provider.SignOut(ctx); err != nil {
			return err
		}
	}

	user, err := services.Users.GetByEmail(ctx, cfg.InitialAdmin.Email)
	if err != nil {
		return err
	}
	if user == nil {
		_, err := services.Users.Create(ctx, &domain.User{
			Email: cfg.InitialAdmin.Email,
			Name:  cfg.InitialAdmin.Name,
			Role:  domain.RoleAdmin,
		})
		return err
	}
	if user.Role != domain.RoleAdmin {
		return services.Users.Update(ctx, user.ID, map[string]any{"role": string(domain.RoleAdmin)})
	}
	return nil
}
