package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/services"
)

type PortraitHandler struct {
	log             *logger.Logger
	portraitService services.PortraitService
}

func NewPortraitHandler(log *logger.Logger, portraitService services.PortraitService) *PortraitHandler {
	return &PortraitHandler{
		log:             log.With("handler", "PortraitHandler"),
		portraitService: portraitService,
	}
}

// Get serves /portraits/{bioguide_id}.jpg. The extension is part of the
// path parameter, so strip it before resolving.
func (h *PortraitHandler) Get(c *gin.Context) {
	bioguideID := strings.TrimSuffix(c.Param("filename"), ".jpg")
	path, err := h.portraitService.Resolve(c.Request.Context(), bioguideID)
	if err != nil {
		if errors.Is(err, services.ErrPortraitNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		h.log.Error("Portrait resolve failed", "error", err, "bioguide_id", bioguideID)
		RespondAPIError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
