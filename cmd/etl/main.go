package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/fec"
	"github.com/capitolwatch/capitolwatch-backend/internal/clients/httpfetch"
	"github.com/capitolwatch/capitolwatch-backend/internal/clients/unitedstates"
	"github.com/capitolwatch/capitolwatch-backend/internal/db"
	"github.com/capitolwatch/capitolwatch-backend/internal/jobs"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

// Standalone ETL runner. With -job it runs the named jobs once and
// exits; without it the cron scheduler runs in the foreground.
func main() {
	_ = godotenv.Load()

	jobNames := flag.String("job", "", "comma-separated job names to run once (empty runs the scheduler)")
	flag.Parse()

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

	legislatorRepo := repos.NewLegislatorRepo(thePG, log)
	serviceHistoryRepo := repos.NewServiceHistoryRepo(thePG, log)
	committeeRepo := repos.NewCommitteeRepo(thePG, log)
	leadershipRepo := repos.NewLeadershipRepo(thePG, log)
	billRepo := repos.NewBillRepo(thePG, log)
	financeRepo := repos.NewFinanceRepo(thePG, log)
	voteRepo := repos.NewVoteRepo(thePG, log)
	fecCandidateRepo := repos.NewFECCandidateRepo(thePG, log)

	fetcher := httpfetch.NewFetcher(log)
	usClient := unitedstates.NewClient(log, fetcher)

	registry := jobs.NewRegistry()
	registry.Register(jobs.NewLegislatorsJob(thePG, log, usClient, legislatorRepo, serviceHistoryRepo, committeeRepo, leadershipRepo))
	registry.Register(jobs.NewVotesJob(thePG, log, usClient, legislatorRepo, voteRepo))
	registry.Register(jobs.NewBillsJob(log, legislatorRepo, billRepo))
	if fecClient, err := fec.NewClient(log, fetcher); err != nil {
		log.Warn("FEC client unavailable, finance job not registered", "error", err)
	} else {
		registry.Register(jobs.NewFinanceJob(thePG, log, fecClient, fecCandidateRepo, legislatorRepo, financeRepo))
	}

	if *jobNames != "" {
		runOnce(log, registry, *jobNames)
		return
	}

	scheduler := jobs.NewScheduler(log, registry)
	for name, envKey := range map[string]string{
		"legislators": "LEGISLATORS_CRON",
		"votes":       "VOTES_CRON",
		"bills":       "BILLS_CRON",
		"finance":     "FINANCE_CRON",
	} {
		spec := utils.GetEnv(envKey, "", log)
		if spec == "" {
			continue
		}
		if err := scheduler.Add(spec, name); err != nil {
			log.Warn("Could not schedule job", "job", name, "spec", spec, "error", err)
		}
	}
	scheduler.Start()
	log.Info("Scheduler running, waiting for signal")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	scheduler.Stop()
}

func runOnce(log *logger.Logger, registry *jobs.Registry, jobNames string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	failed := false
	for _, name := range strings.Split(jobNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := registry.Get(name); !ok {
			log.Error("Unknown job", "job", name, "available", registry.Names())
			failed = true
			continue
		}
		log.Info("Running job", "job", name)
		if err := registry.Run(ctx, name); err != nil {
			log.Error("Job failed", "job", name, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
