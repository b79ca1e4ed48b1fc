package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

// billSeed is one entry of the sponsored-bills seed file. Bulk bill data
// has no public feed with stable identifiers yet, so sponsorships load
// from a curated YAML file keyed on bioguide ids.
type billSeed struct {
	BioguideID      string `yaml:"bioguide_id"`
	BillNumber      string `yaml:"bill_number"`
	Title           string `yaml:"title"`
	SponsorshipType string `yaml:"sponsorship_type"`
	Status          string `yaml:"status"`
	IntroducedDate  string `yaml:"introduced_date"`
}

type BillsJob struct {
	log            *logger.Logger
	legislatorRepo repos.LegislatorRepo
	billRepo       repos.BillRepo
	seedPath       string
}

func NewBillsJob(baseLog *logger.Logger, legislatorRepo repos.LegislatorRepo, billRepo repos.BillRepo) *BillsJob {
	log := baseLog.With("job", "bills")
	return &BillsJob{
		log:            log,
		legislatorRepo: legislatorRepo,
		billRepo:       billRepo,
		seedPath:       utils.GetEnv("BILLS_SEED_PATH", "", log),
	}
}

func (j *BillsJob) Name() string { return "bills" }

func (j *BillsJob) Run(ctx context.Context) error {
	if j.seedPath == "" {
		j.log.Warn("BILLS_SEED_PATH not set, skipping bill run")
		return nil
	}

	raw, err := os.ReadFile(j.seedPath)
	if err != nil {
		return fmt.Errorf("read bills seed: %w", err)
	}
	var seeds []billSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse bills seed: %w", err)
	}

	idsByBioguide, err := j.legislatorRepo.BioguideIDMap(ctx, nil)
	if err != nil {
		return fmt.Errorf("load bioguide id map: %w", err)
	}

	bills := make([]*types.BillSponsorship, 0, len(seeds))
	var skipped int
	for _, seed := range seeds {
		legislatorID, ok := idsByBioguide[seed.BioguideID]
		if !ok || seed.BillNumber == "" {
			j.log.Warn("Skipping seed entry", "bioguide_id", seed.BioguideID, "bill_number", seed.BillNumber)
			skipped++
			continue
		}

		var introduced *time.Time
		if seed.IntroducedDate != "" {
			parsed, err := time.Parse("2006-01-02", seed.IntroducedDate)
			if err != nil {
				j.log.Warn("Bad introduced_date in seed", "bill_number", seed.BillNumber, "value", seed.IntroducedDate)
			} else {
				introduced = &parsed
			}
		}

		sponsorship := seed.SponsorshipType
		if sponsorship == "" {
			sponsorship = types.SponsorshipSponsor
		}

		bills = append(bills, &types.BillSponsorship{
			LegislatorID:    legislatorID,
			BillNumber:      seed.BillNumber,
			Title:           seed.Title,
			SponsorshipType: sponsorship,
			Status:          seed.Status,
			IntroducedDate:  introduced,
		})
	}

	if err := j.billRepo.UpsertBills(ctx, nil, bills); err != nil {
		return fmt.Errorf("upsert bills: %w", err)
	}

	j.log.Info("Bill ETL summary", "upserted", len(bills), "skipped", skipped)
	return nil
}
