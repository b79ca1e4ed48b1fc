package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/fec"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

const breakdownTopN = 10

// FinanceJob walks the fec_candidates mapping table and refreshes one
// campaign_finance row per (legislator, cycle) from the OpenFEC API.
type FinanceJob struct {
	db             *gorm.DB
	log            *logger.Logger
	client         *fec.Client
	candidateRepo  repos.FECCandidateRepo
	legislatorRepo repos.LegislatorRepo
	financeRepo    repos.FinanceRepo
}

func NewFinanceJob(
	db *gorm.DB,
	baseLog *logger.Logger,
	client *fec.Client,
	candidateRepo repos.FECCandidateRepo,
	legislatorRepo repos.LegislatorRepo,
	financeRepo repos.FinanceRepo,
) *FinanceJob {
	return &FinanceJob{
		db:             db,
		log:            baseLog.With("job", "finance"),
		client:         client,
		candidateRepo:  candidateRepo,
		legislatorRepo: legislatorRepo,
		financeRepo:    financeRepo,
	}
}

func (j *FinanceJob) Name() string { return "finance" }

func (j *FinanceJob) Run(ctx context.Context) error {
	j.log.Info("Starting finance ETL run")

	candidates, err := j.candidateRepo.ListAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("load fec candidates: %w", err)
	}
	if len(candidates) == 0 {
		j.log.Warn("No FEC candidate mappings loaded, skipping finance run")
		return nil
	}

	idsByBioguide, err := j.legislatorRepo.BioguideIDMap(ctx, nil)
	if err != nil {
		return fmt.Errorf("load bioguide id map: %w", err)
	}

	var updated, dropped, failed int
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		legislatorID, ok := idsByBioguide[candidate.BioguideID]
		if !ok {
			j.log.Warn("FEC candidate has no matching legislator", "fec_id", candidate.FECID, "bioguide_id", candidate.BioguideID)
			dropped++
			continue
		}

		row, err := j.buildRow(ctx, candidate, legislatorID)
		if err != nil {
			j.log.Error("Failed building finance row", "fec_id", candidate.FECID, "cycle", candidate.Cycle, "error", err)
			failed++
			continue
		}
		if row == nil {
			dropped++
			continue
		}
		if err := j.financeRepo.UpsertFinance(ctx, nil, []*types.CampaignFinance{row}); err != nil {
			j.log.Error("Failed upserting finance row", "fec_id", candidate.FECID, "cycle", candidate.Cycle, "error", err)
			failed++
			continue
		}
		updated++
	}

	j.log.Info("Finance ETL summary", "updated", updated, "dropped", dropped, "failed", failed)
	return nil
}

func (j *FinanceJob) buildRow(ctx context.Context, candidate *types.FECCandidate, legislatorID uuid.UUID) (*types.CampaignFinance, error) {
	totals, err := j.client.FetchTotals(ctx, candidate.FECID, candidate.Cycle)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		return nil, nil
	}

	donorSums, err := j.client.FetchItemized(ctx, candidate.FECID, candidate.Cycle, "contributor_organization")
	if err != nil {
		return nil, err
	}
	industrySums, err := j.client.FetchItemized(ctx, candidate.FECID, candidate.Cycle, "contributor_employer")
	if err != nil {
		return nil, err
	}

	topDonors, err := marshalBreakdown(fec.BuildBreakdown(donorSums, breakdownTopN))
	if err != nil {
		return nil, err
	}
	industries, err := marshalBreakdown(fec.BuildBreakdown(industrySums, breakdownTopN))
	if err != nil {
		return nil, err
	}

	return &types.CampaignFinance{
		LegislatorID:         legislatorID,
		Cycle:                candidate.Cycle,
		TotalRaised:          totals.TotalRaised,
		TotalSpent:           totals.TotalSpent,
		OtherFederalReceipts: totals.OtherFederalReceipts,
		TopDonors:            topDonors,
		IndustryBreakdown:    industries,
	}, nil
}

func marshalBreakdown(entries []fec.BreakdownEntry) (datatypes.JSON, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}
	return datatypes.JSON(raw), nil
}
