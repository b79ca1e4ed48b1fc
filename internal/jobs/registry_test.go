package jobs

import (
	"context"
	"errors"
	"testing"
)

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingJob) Name() string { return "blocking" }

func (b *blockingJob) Run(ctx context.Context) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return nil
}

func TestRegistryRun_OneRunAtATimePerJob(t *testing.T) {
	reg := NewRegistry()
	job := &blockingJob{started: make(chan struct{}, 1), release: make(chan struct{})}
	reg.Register(job)

	done := make(chan error, 1)
	go func() { done <- reg.Run(context.Background(), "blocking") }()
	<-job.started

	if err := reg.Run(context.Background(), "blocking"); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("overlapping run must return ErrAlreadyRunning, got %v", err)
	}

	close(job.release)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Gate released, the next run goes through.
	if err := reg.Run(context.Background(), "blocking"); err != nil {
		t.Fatalf("run after completion failed: %v", err)
	}
}

func TestRegistryRun_UnknownJob(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Run(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unregistered job")
	}
}
