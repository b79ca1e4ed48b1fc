package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/services"
)

type LegislatorHandler struct {
	log               *logger.Logger
	legislatorService services.LegislatorService
	profileService    services.ProfileService
}

func NewLegislatorHandler(log *logger.Logger, legislatorService services.LegislatorService, profileService services.ProfileService) *LegislatorHandler {
	return &LegislatorHandler{
		log:               log.With("handler", "LegislatorHandler"),
		legislatorService: legislatorService,
		profileService:    profileService,
	}
}

// List serves the paginated roster. Unparseable page or pageSize query
// values silently fall back to the defaults.
func (h *LegislatorHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	result, err := h.legislatorService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.log.Error("List failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	c.Header("X-Total-Count", fmt.Sprintf("%d", result.TotalCount))
	RespondOK(c, result)
}

func (h *LegislatorHandler) GetProfile(c *gin.Context) {
	bioguideID := c.Param("bioguide_id")
	profile, err := h.profileService.GetProfile(c.Request.Context(), bioguideID)
	if err != nil {
		h.log.Error("GetProfile failed", "error", err, "bioguide_id", bioguideID)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}
