package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/unitedstates"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

// VotesJob scans the House clerk roll call feed sequentially from roll 1
// and stops after a run of consecutive missing rolls.
type VotesJob struct {
	db             *gorm.DB
	log            *logger.Logger
	client         *unitedstates.Client
	legislatorRepo repos.LegislatorRepo
	voteRepo       repos.VoteRepo

	congress  int
	session   int
	year      int
	maxMisses int
	maxRolls  int
}

func NewVotesJob(
	db *gorm.DB,
	baseLog *logger.Logger,
	client *unitedstates.Client,
	legislatorRepo repos.LegislatorRepo,
	voteRepo repos.VoteRepo,
) *VotesJob {
	log := baseLog.With("job", "votes")
	return &VotesJob{
		db:             db,
		log:            log,
		client:         client,
		legislatorRepo: legislatorRepo,
		voteRepo:       voteRepo,
		congress:       utils.GetEnvAsInt("CONGRESS", 119, log),
		session:        utils.GetEnvAsInt("SESSION", 1, log),
		year:           utils.GetEnvAsInt("HOUSE_YEAR", time.Now().Year(), log),
		maxMisses:      utils.GetEnvAsInt("MAX_CONSECUTIVE_MISSES", 5, log),
		maxRolls:       utils.GetEnvAsInt("MAX_ROLLS", 2000, log),
	}
}

func (j *VotesJob) Name() string { return "votes" }

func (j *VotesJob) Run(ctx context.Context) error {
	j.log.Info("Starting vote ETL run", "congress", j.congress, "session", j.session, "year", j.year)

	idsByBioguide, err := j.legislatorRepo.BioguideIDMap(ctx, nil)
	if err != nil {
		return fmt.Errorf("load bioguide id map: %w", err)
	}
	if len(idsByBioguide) == 0 {
		j.log.Warn("No legislators loaded yet, skipping vote run")
		return nil
	}

	var stored, misses int
	for roll := 1; roll <= j.maxRolls; roll++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rollCall, err := j.client.FetchHouseRoll(ctx, j.year, roll)
		if err != nil {
			j.log.Error("Failed fetching roll", "roll", roll, "error", err)
			misses++
			if misses >= j.maxMisses {
				break
			}
			continue
		}
		if rollCall == nil {
			misses++
			if misses >= j.maxMisses {
				break
			}
			continue
		}
		misses = 0

		if err := j.storeRoll(ctx, roll, rollCall, idsByBioguide); err != nil {
			j.log.Error("Failed storing roll", "roll", roll, "error", err)
			continue
		}
		stored++
	}

	j.log.Info("Vote ETL summary", "sessions_stored", stored)
	return nil
}

func (j *VotesJob) storeRoll(ctx context.Context, roll int, rollCall *unitedstates.HouseRollCall, idsByBioguide map[string]uuid.UUID) error {
	date, err := rollCall.ActionDate()
	if err != nil {
		return fmt.Errorf("parse action date %q: %w", rollCall.Metadata.ActionDate, err)
	}

	session := &types.VoteSession{
		VoteID:      fmt.Sprintf("h%d-%d.%d", roll, j.congress, j.session),
		Congress:    j.congress,
		Session:     j.session,
		Roll:        roll,
		Chamber:     "House",
		Date:        date,
		BillNumber:  rollCall.Metadata.LegisNum,
		Question:    rollCall.Metadata.Question,
		Description: rollCall.Metadata.VoteDesc,
		Result:      rollCall.Metadata.VoteResult,
	}

	records := make([]*types.VoteRecord, 0, len(rollCall.Records))
	for _, rec := range rollCall.Records {
		cast := NormalizeVoteCast(rec.Vote)
		switch cast {
		case types.VoteCastYea:
			session.TallyYea++
		case types.VoteCastNay:
			session.TallyNay++
		case types.VoteCastPresent:
			session.TallyPresent++
		case types.VoteCastNotVoting, types.VoteCastAbsent:
			session.TallyNotVoting++
		}
		records = append(records, &types.VoteRecord{VoteCast: cast})
	}

	return j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saved, err := j.voteRepo.UpsertSession(ctx, tx, session)
		if err != nil {
			return fmt.Errorf("upsert session: %w", err)
		}

		matched := records[:0]
		for i, rec := range rollCall.Records {
			bioguide := rec.BioguideID()
			legislatorID, ok := idsByBioguide[bioguide]
			if !ok {
				j.log.Warn("Roll call member not in roster", "bioguide_id", bioguide, "roll", roll)
				continue
			}
			records[i].VoteSessionID = saved.ID
			records[i].LegislatorID = legislatorID
			matched = append(matched, records[i])
		}
		if err := j.voteRepo.UpsertRecords(ctx, tx, matched); err != nil {
			return fmt.Errorf("upsert records: %w", err)
		}
		return nil
	})
}

// NormalizeVoteCast maps the clerk feed spellings onto the canonical
// vote positions stored per record.
func NormalizeVoteCast(vote string) string {
	switch vote {
	case "Yea", "Aye", "Yes":
		return types.VoteCastYea
	case "Nay", "No":
		return types.VoteCastNay
	case "Present":
		return types.VoteCastPresent
	case "Not Voting":
		return types.VoteCastNotVoting
	case "Absent":
		return types.VoteCastAbsent
	default:
		return types.VoteCastUnknown
	}
}
