package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
)

// Scheduler runs registered jobs on cron schedules through the
// registry's per-job gate, so a schedule firing while the previous run
// is still going (scheduled or manually triggered) is skipped with a
// warning.
type Scheduler struct {
	log      *logger.Logger
	registry *Registry
	cron     *cron.Cron
}

func NewScheduler(baseLog *logger.Logger, registry *Registry) *Scheduler {
	return &Scheduler{
		log:      baseLog.With("component", "JobScheduler"),
		registry: registry,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Add(spec, jobName string) error {
	if _, ok := s.registry.Get(jobName); !ok {
		return fmt.Errorf("no job registered with name %q", jobName)
	}

	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.log.Info("Job starting", "job", jobName)
		err := s.registry.Run(context.Background(), jobName)
		switch {
		case errors.Is(err, ErrAlreadyRunning):
			s.log.Warn("Previous run still in progress, skipping", "job", jobName)
		case err != nil:
			s.log.Error("Job failed", "job", jobName, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		default:
			s.log.Info("Job finished", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q for job %q: %w", spec, jobName, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
