package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/jobs"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
)

// JobsHandler exposes the registered ETL jobs behind the admin surface.
// Triggers are fire-and-forget: the run happens in the background and
// the request returns 202 immediately. Runs share the registry's
// per-job gate with the scheduler, so a trigger never overlaps a
// scheduled run of the same job.
type JobsHandler struct {
	log      *logger.Logger
	registry *jobs.Registry
}

func NewJobsHandler(log *logger.Logger, registry *jobs.Registry) *JobsHandler {
	return &JobsHandler{
		log:      log.With("handler", "JobsHandler"),
		registry: registry,
	}
}

func (h *JobsHandler) List(c *gin.Context) {
	RespondOK(c, gin.H{"jobs": h.registry.Names()})
}

func (h *JobsHandler) Trigger(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.registry.Get(name); !ok {
		RespondError(c, http.StatusNotFound, "unknown_job", nil)
		return
	}

	go func() {
		if err := h.registry.Run(context.Background(), name); err != nil {
			if errors.Is(err, jobs.ErrAlreadyRunning) {
				h.log.Warn("Triggered job already running, skipped", "job", name)
				return
			}
			h.log.Error("Triggered job failed", "job", name, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "job": name})
}
