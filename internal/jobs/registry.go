package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrAlreadyRunning is returned by Run when a run of the same job is
// still in progress.
var ErrAlreadyRunning = errors.New("job already running")

// Job is one runnable ETL unit. Runs are idempotent: every write path
// is an upsert keyed by the entity's natural key.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Registry struct {
	mu    sync.RWMutex
	jobs  map[string]Job
	gates map[string]chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		jobs:  map[string]Job{},
		gates: map[string]chan struct{}{},
	}
}

func (r *Registry) Register(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.Name()] = job
	if _, ok := r.gates[job.Name()]; !ok {
		r.gates[job.Name()] = make(chan struct{}, 1)
	}
}

func (r *Registry) Get(name string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[name]
	return job, ok
}

// Run executes the named job, one run at a time per job. Scheduled and
// manually triggered runs go through the same gate; a run requested
// while the previous one is still going returns ErrAlreadyRunning
// without blocking.
func (r *Registry) Run(ctx context.Context, name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	gate := r.gates[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no job registered with name %q", name)
	}

	select {
	case gate <- struct{}{}:
	default:
		return ErrAlreadyRunning
	}
	defer func() { <-gate }()

	return job.Run(ctx)
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
