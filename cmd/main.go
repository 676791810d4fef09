package main

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/api"
	"github.com/talentflow/ats/internal/clients/ats"
	"github.com/talentflow/ats/internal/config"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/metrics"
	"github.com/talentflow/ats/internal/notifier"
	"github.com/talentflow/ats/internal/repositories"
	"github.com/talentflow/ats/internal/services"
	"github.com/talentflow/ats/internal/session"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func newServer(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) *http.Server {
	jobs := repositories.NewJobsRepository(dbContext.DB)
	candidates := repositories.NewCandidatesRepository(dbContext.DB)

	apiServer, err := api.NewServer(api.Repositories{
		Jobs:        jobs,
		Candidates:  candidates,
		Assessments: repositories.NewAssessmentsRepository(dbContext.DB),
		Responses:   repositories.NewResponsesRepository(dbContext.DB),
		Drafts:      repositories.NewDraftsRepository(dbContext.DB),
		Queries:     repositories.NewCachedQueries(jobs, candidates, cfg.Server.CacheExpiration),
	}, bus)
	if err != nil {
		log.Fatalf("can't create api server: %v", err)
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: apiServer.Router(cfg.Server, nil),
	}
}

// warmUp primes the filter options cache through the data access client, so
// the first job board load does not pay for the full scan.
func warmUp(ctx context.Context, cfg *config.Config) {
	client := ats.NewClientFromConfig(fmt.Sprintf("http://localhost:%d", cfg.Server.Port), cfg.Simulation).
		WithSession(session.Session{UserID: "system", Name: "System", Role: session.RoleHR})

	options, err := client.FilterOptions(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeClient).Warnf("warm up failed: %v", err)
		return
	}
	log.Infof("warm up done: %d departments, %d locations, %d tags",
		len(options.Departments), len(options.Locations), len(options.Tags))
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	if err = dbContext.Seed(ctx, cfg.DB.SeedCandidates, nil); err != nil {
		log.Fatalf("can't seed db: %v", err)
	}

	bus := EventBus.New()

	if cfg.Notifier.Enabled() {
		tg, err := notifier.NewTelegram(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID, bus)
		if err != nil {
			log.Fatalf("can't create notifier: %v", err)
		}
		defer tg.Close()
	}

	cleaner, err := services.NewDraftsCleaner(repositories.NewDraftsRepository(dbContext.DB), cfg.Drafts.ExpirationDays)
	if err != nil {
		log.Fatalf("can't create drafts cleaner: %v", err)
	}
	defer cleaner.Stop()

	server := newServer(cfg, dbContext, bus)

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatalf("can't listen on %s: %v", server.Addr, err)
	}

	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	go warmUp(ctx, cfg)

	<-ctx.Done()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("Server stopped.")
}
