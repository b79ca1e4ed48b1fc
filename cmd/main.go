package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/fec"
	"github.com/capitolwatch/capitolwatch-backend/internal/clients/httpfetch"
	redisclient "github.com/capitolwatch/capitolwatch-backend/internal/clients/redis"
	"github.com/capitolwatch/capitolwatch-backend/internal/clients/unitedstates"
	"github.com/capitolwatch/capitolwatch-backend/internal/db"
	"github.com/capitolwatch/capitolwatch-backend/internal/handlers"
	"github.com/capitolwatch/capitolwatch-backend/internal/jobs"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/middleware"
	"github.com/capitolwatch/capitolwatch-backend/internal/observability"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/server"
	"github.com/capitolwatch/capitolwatch-backend/internal/services"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "capitolwatch-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	legislatorRepo := repos.NewLegislatorRepo(thePG, log)
	serviceHistoryRepo := repos.NewServiceHistoryRepo(thePG, log)
	committeeRepo := repos.NewCommitteeRepo(thePG, log)
	leadershipRepo := repos.NewLeadershipRepo(thePG, log)
	billRepo := repos.NewBillRepo(thePG, log)
	financeRepo := repos.NewFinanceRepo(thePG, log)
	voteRepo := repos.NewVoteRepo(thePG, log)
	fecCandidateRepo := repos.NewFECCandidateRepo(thePG, log)

	// Clients
	fetcher := httpfetch.NewFetcher(log)
	usClient := unitedstates.NewClient(log, fetcher)
	profileCache, err := redisclient.NewProfileCache(log)
	if err != nil {
		log.Warn("Profile cache unavailable, serving uncached", "error", err)
		profileCache = nil
	}
	defer func() {
		if profileCache != nil {
			_ = profileCache.Close()
		}
	}()

	// Services
	log.Info("Setting up Services from main...")
	legislatorService := services.NewLegislatorService(thePG, log, legislatorRepo)
	profileService := services.NewProfileService(
		thePG,
		log,
		legislatorRepo,
		serviceHistoryRepo,
		committeeRepo,
		leadershipRepo,
		billRepo,
		financeRepo,
		voteRepo,
		profileCache,
	)
	voteService := services.NewVoteService(thePG, log, voteRepo)
	portraitService, err := services.NewPortraitService(thePG, log, legislatorRepo)
	if err != nil {
		log.Error("Could not init PortraitService", "error", err)
		os.Exit(1)
	}

	// Jobs
	registry := jobs.NewRegistry()
	registry.Register(jobs.NewLegislatorsJob(thePG, log, usClient, legislatorRepo, serviceHistoryRepo, committeeRepo, leadershipRepo))
	registry.Register(jobs.NewVotesJob(thePG, log, usClient, legislatorRepo, voteRepo))
	registry.Register(jobs.NewBillsJob(log, legislatorRepo, billRepo))
	if fecClient, err := fec.NewClient(log, fetcher); err != nil {
		log.Warn("FEC client unavailable, finance job not registered", "error", err)
	} else {
		registry.Register(jobs.NewFinanceJob(thePG, log, fecClient, fecCandidateRepo, legislatorRepo, financeRepo))
	}

	scheduler := jobs.NewScheduler(log, registry)
	scheduleJob(scheduler, log, "legislators", utils.GetEnv("LEGISLATORS_CRON", "0 4 * * *", log))
	scheduleJob(scheduler, log, "votes", utils.GetEnv("VOTES_CRON", "30 4 * * *", log))
	scheduleJob(scheduler, log, "bills", utils.GetEnv("BILLS_CRON", "", log))
	scheduleJob(scheduler, log, "finance", utils.GetEnv("FINANCE_CRON", "0 5 * * 0", log))
	if utils.GetEnvAsBool("SCHEDULER_ENABLED", true, log) {
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Handlers
	legislatorHandler := handlers.NewLegislatorHandler(log, legislatorService, profileService)
	voteHandler := handlers.NewVoteHandler(log, voteService)
	portraitHandler := handlers.NewPortraitHandler(log, portraitService)
	jobsHandler := handlers.NewJobsHandler(log, registry)
	authMiddleware := middleware.NewAuthMiddleware(log)

	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		LegislatorHandler: legislatorHandler,
		VoteHandler:       voteHandler,
		PortraitHandler:   portraitHandler,
		JobsHandler:       jobsHandler,
		AuthMiddleware:    authMiddleware,
		TracingEnabled:    observability.Enabled(),
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(":" + port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error("Server exited", "error", err)
		os.Exit(1)
	case sig := <-quit:
		log.Info("Shutting down", "signal", sig.String())
	}
}

func scheduleJob(scheduler *jobs.Scheduler, log *logger.Logger, name, spec string) {
	if spec == "" {
		log.Info("No schedule configured for job", "job", name)
		return
	}
	if err := scheduler.Add(spec, name); err != nil {
		log.Warn("Could not schedule job", "job", name, "spec", spec, "error", err)
	}
}
