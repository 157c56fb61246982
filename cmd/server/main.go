package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vncsmyrnk/electoral/internal/adapters/handler/http"
	"github.com/vncsmyrnk/electoral/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/electoral/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/electoral/internal/config"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/core/services"
	"github.com/vncsmyrnk/electoral/internal/logger"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

type repositories struct {
	voters   ports.VoterRepository
	stations ports.StationRepository
	votes    ports.VoteRepository
	config   ports.ConfigRepository
	reports  ports.ReportRepository
	users    ports.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := services.NewClock(cfg.Location, time.Now)

	repos, closeRepos, err := openRepositories(ctx, cfg, clock)
	if err != nil {
		log.Error("failed to open storage", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}
	defer closeRepos()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	window := services.NewWindowService(repos.config, clock, m, log)
	voters := services.NewVoterService(repos.voters, m, log)
	stations := services.NewStationService(repos.stations, window, clock, m, log)
	votes := services.NewVoteService(repos.voters, repos.votes, repos.stations, window, clock, m, log)
	auth := services.NewAuthService(repos.users, stations, clock, cfg.JWTSecret, cfg.TokenTTL, log)

	if cfg.AdminID != "" {
		if err := auth.EnsureAdmin(ctx, cfg.AdminID, cfg.AdminPassword); err != nil {
			log.Error("failed to provision administrator", "error", err)
			os.Exit(1)
		}
	}

	handler := http.NewHandler(http.Handlers{
		Auth:     http.NewAuthHandler(auth, cfg.TokenTTL, cfg.CookieDomain, log),
		Window:   http.NewWindowHandler(window, log),
		Config:   http.NewConfigHandler(services.NewConfigService(repos.config, log), log),
		Voters:   http.NewVoterHandler(voters, log),
		Stations: http.NewStationHandler(stations, log),
		Votes:    http.NewVoteHandler(votes, voters, log),
		Reports:  http.NewReportHandler(services.NewReportService(repos.reports, clock), log),
	}, http.Options{
		Logger:      log,
		Tokens:      auth,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr, "storage", cfg.Storage, "timezone", cfg.Location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func openRepositories(ctx context.Context, cfg config.Config, clock services.Clock) (repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore(clock.Now)
		store.SeedDefaults()
		return repositories{
			voters:   memory.NewVoterRepository(store),
			stations: memory.NewStationRepository(store),
			votes:    memory.NewVoteRepository(store),
			config:   memory.NewConfigRepository(store),
			reports:  memory.NewReportRepository(store),
			users:    memory.NewUserRepository(store),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories{}, nil, err
	}
	return repositories{
		voters:   postgres.NewVoterRepository(db),
		stations: postgres.NewStationRepository(db),
		votes:    postgres.NewVoteRepository(db),
		config:   postgres.NewConfigRepository(db),
		reports:  postgres.NewReportRepository(db),
		users:    postgres.NewUserRepository(db),
	}, func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}
