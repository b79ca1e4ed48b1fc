package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/apierr"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

const DefaultVoteListLimit = 100

// VoteSessionDetail pairs a roll call with every cast position recorded
// for it.
type VoteSessionDetail struct {
	*types.VoteSession
	Records []*types.VoteRecord `json:"records"`
}

type VoteService interface {
	GetSession(ctx context.Context, voteID string) (*VoteSessionDetail, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*VoteSessionDetail, error)
}

type voteService struct {
	db       *gorm.DB
	log      *logger.Logger
	voteRepo repos.VoteRepo
}

func NewVoteService(db *gorm.DB, log *logger.Logger, voteRepo repos.VoteRepo) VoteService {
	serviceLog := log.With("service", "VoteService")
	return &voteService{db: db, log: serviceLog, voteRepo: voteRepo}
}

func (vs *voteService) GetSession(ctx context.Context, voteID string) (*VoteSessionDetail, error) {
	session, err := vs.voteRepo.GetSessionByVoteID(ctx, nil, voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("vote session %q not found", voteID))
		}
		vs.log.Error("Vote session lookup failed", "vote_id", voteID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}

	records, err := vs.voteRepo.ListRecordsBySession(ctx, nil, session.ID)
	if err != nil {
		vs.log.Error("Vote record lookup failed", "vote_id", voteID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
	if records == nil {
		records = []*types.VoteRecord{}
	}
	return &VoteSessionDetail{VoteSession: session, Records: records}, nil
}

func (vs *voteService) ListSessions(ctx context.Context, limit, offset int) ([]*VoteSessionDetail, error) {
	if limit < 1 {
		limit = DefaultVoteListLimit
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := vs.voteRepo.ListSessions(ctx, nil, offset, limit)
	if err != nil {
		vs.log.Error("Vote session list failed", "limit", limit, "offset", offset, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}

	details := make([]*VoteSessionDetail, 0, len(sessions))
	for _, session := range sessions {
		records, err := vs.voteRepo.ListRecordsBySession(ctx, nil, session.ID)
		if err != nil {
			vs.log.Error("Vote record lookup failed", "vote_id", session.VoteID, "error", err)
			return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
		}
		if records == nil {
			records = []*types.VoteRecord{}
		}
		details = append(details, &VoteSessionDetail{VoteSession: session, Records: records})
	}
	return details, nil
}
