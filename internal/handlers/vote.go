package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/services"
)

type VoteHandler struct {
	log         *logger.Logger
	voteService services.VoteService
}

func NewVoteHandler(log *logger.Logger, voteService services.VoteService) *VoteHandler {
	return &VoteHandler{
		log:         log.With("handler", "VoteHandler"),
		voteService: voteService,
	}
}

func (h *VoteHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = services.DefaultVoteListLimit
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := h.voteService.ListSessions(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("ListSessions failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (h *VoteHandler) GetSession(c *gin.Context) {
	voteID := c.Param("vote_id")
	session, err := h.voteService.GetSession(c.Request.Context(), voteID)
	if err != nil {
		h.log.Error("GetSession failed", "error", err, "vote_id", voteID)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, session)
}
