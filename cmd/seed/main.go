package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/circussync/backend/internal/auth"
	"github.com/circussync/backend/internal/config"
	"github.com/circussync/backend/internal/seed"
	"github.com/circussync/backend/internal/service"
	"github.com/circussync/backend/internal/store"
	"github.com/circussync/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random users, 2: random clients, 3: random performers, 4: random events, 5: random agents, 6: random tasks, 7: sample agency data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

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

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	st := store.NewPostgres(dbpool, time.Duration(cfg.Database.QueryTimeout)*time.Second)
	if err := st.Init(ctx); err != nil {
		logger.Error("unable to initialize database schema", "error", err)
		return
	}

	services := service.New(st)
	provider := auth.NewStoreProvider(st, nil)

	ctx = context.Background()

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("invalid user count")
			return
		}
		cnt := 0
		roles := seed.SeedableRoles()
		for i := 0; i < n; i++ {
			name := utils.GenerateRandomName()
			email := utils.GenerateRandomEmail("crew", cfg.Seed.EmailDomain)

			identity, err := provider.Register(ctx, email, cfg.Seed.Password, name)
			if err != nil {
				slog.Error("unable to register user", slog.String("error", err.Error()))
				continue
			}
			user, err := auth.ResolveUser(ctx, services.Users, *identity)
			if err != nil {
				slog.Error("unable to resolve user profile", slog.String("error", err.Error()))
				continue
			}
			role := roles[rand.Intn(len(roles))]
			if err := services.Users.Update(ctx, user.ID, map[string]any{"role": string(role)}); err != nil {
				slog.Error("unable to assign role", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("users inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("invalid client count")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			if _, err := services.Clients.Add(ctx, utils.GenerateRandomClient()); err != nil {
				slog.Error("unable to insert client", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("clients inserted", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("invalid performer count")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			if _, err := services.Performers.Add(ctx, utils.GenerateRandomPerformer()); err != nil {
				slog.Error("unable to insert performer", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("performers inserted", slog.Int("count", cnt))
	case 4:
		if n <= 0 {
			slog.Error("invalid event count")
			return
		}

		clients, err := services.Clients.GetAll(ctx)
		if err != nil || len(clients) == 0 {
			slog.Error("no clients to book events for", "error", err)
			return
		}
		performers, err := services.Performers.GetAll(ctx)
		if err != nil || len(performers) == 0 {
			slog.Error("no performers to book events with", "error", err)
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			client := clients[rand.Intn(len(clients))]

			lineup := rand.Intn(3) + 1
			performerIDs := make([]string, 0, lineup)
			for j := 0; j < lineup; j++ {
				performerIDs = append(performerIDs, performers[rand.Intn(len(performers))].ID)
			}

			if _, err := services.Events.Add(ctx, utils.GenerateRandomEvent(client.ID, performerIDs)); err != nil {
				slog.Error("unable to insert event", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("events inserted", slog.Int("count", cnt))
	case 5:
		if n <= 0 {
			slog.Error("invalid agent count")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			if _, err := services.Agents.Add(ctx, utils.GenerateRandomAgent()); err != nil {
				slog.Error("unable to insert agent", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("agents inserted", slog.Int("count", cnt))
	case 6:
		users, err := services.Users.GetAll(ctx)
		if err != nil || len(users) == 0 {
			slog.Error("no users to assign tasks to", "error", err)
			return
		}

		cnt := 0
		for _, user := range users {
			if _, err := services.Tasks.Add(ctx, utils.GenerateRandomTask(user.ID)); err != nil {
				slog.Error("unable to insert task", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("tasks inserted", slog.Int("count", cnt))
	case 7:
		seed.SeedSampleData(ctx, services)
	default:
		slog.Error("invalid operation")
	}
}
