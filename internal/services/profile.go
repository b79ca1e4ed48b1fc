package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/apierr"
	redisclient "github.com/capitolwatch/capitolwatch-backend/internal/clients/redis"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

const (
	sponsoredBillsLimit = 10
	recentVotesLimit    = 20
)

// Profile is the composite document the detail view renders. The stored
// portrait URL and bio snapshot are not client-facing; PortraitURL points
// at the locally served asset and Bio carries the snapshot text.
type Profile struct {
	ID                  uuid.UUID                    `json:"id"`
	BioguideID          string                       `json:"bioguide_id"`
	FirstName           string                       `json:"first_name"`
	LastName            string                       `json:"last_name"`
	FullName            string                       `json:"full_name"`
	Gender              string                       `json:"gender"`
	Birthday            string                       `json:"birthday"`
	Party               string                       `json:"party"`
	State               string                       `json:"state"`
	District            *int                         `json:"district"`
	Chamber             string                       `json:"chamber"`
	OfficialWebsiteURL  string                       `json:"official_website_url"`
	OfficeContact       datatypes.JSON               `json:"office_contact"`
	Bio                 string                       `json:"bio"`
	PortraitURL         string                       `json:"portrait_url"`
	ServiceHistory      []*types.ServiceHistory      `json:"service_history"`
	Committees          []*types.CommitteeAssignment `json:"committees"`
	LeadershipPositions []*types.LeadershipRole      `json:"leadership_positions"`
	SponsoredBills      []*types.BillSponsorship     `json:"sponsored_bills"`
	FinanceSummary      map[string]interface{}       `json:"finance_summary"`
	RecentVotes         []RecentVote                 `json:"recent_votes"`
}

type RecentVote struct {
	VoteID     string    `json:"vote_id"`
	Date       time.Time `json:"date"`
	BillNumber string    `json:"bill_number"`
	Question   string    `json:"question"`
	Result     string    `json:"result"`
	VoteCast   string    `json:"vote_cast"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, bioguideID string) (*Profile, error)
}

type profileService struct {
	db                 *gorm.DB
	log                *logger.Logger
	legislatorRepo     repos.LegislatorRepo
	serviceHistoryRepo repos.ServiceHistoryRepo
	committeeRepo      repos.CommitteeRepo
	leadershipRepo     repos.LeadershipRepo
	billRepo           repos.BillRepo
	financeRepo        repos.FinanceRepo
	voteRepo           repos.VoteRepo
	cache              redisclient.ProfileCache
}

func NewProfileService(
	db *gorm.DB,
	log *logger.Logger,
	legislatorRepo repos.LegislatorRepo,
	serviceHistoryRepo repos.ServiceHistoryRepo,
	committeeRepo repos.CommitteeRepo,
	leadershipRepo repos.LeadershipRepo,
	billRepo repos.BillRepo,
	financeRepo repos.FinanceRepo,
	voteRepo repos.VoteRepo,
	cache redisclient.ProfileCache,
) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:                 db,
		log:                serviceLog,
		legislatorRepo:     legislatorRepo,
		serviceHistoryRepo: serviceHistoryRepo,
		committeeRepo:      committeeRepo,
		leadershipRepo:     leadershipRepo,
		billRepo:           billRepo,
		financeRepo:        financeRepo,
		voteRepo:           voteRepo,
		cache:              cache,
	}
}

// GetProfile assembles the composite record for one legislator. The core
// lookup decides between 404 and fan-out; after that the contract is
// all-or-nothing: if any section fails the whole call fails, so clients
// never see a silently incomplete profile.
func (ps *profileService) GetProfile(ctx context.Context, bioguideID string) (*Profile, error) {
	if ps.cache != nil {
		if raw, ok := ps.cache.Get(ctx, bioguideID); ok {
			var cached Profile
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			ps.log.Warn("Discarding undecodable cached profile", "bioguide_id", bioguideID)
		}
	}

	legislator, err := ps.legislatorRepo.GetByBioguideID(ctx, nil, bioguideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("legislator %q not found", bioguideID))
		}
		ps.log.Error("Core legislator lookup failed", "bioguide_id", bioguideID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}

	var (
		history    []*types.ServiceHistory
		committees []*types.CommitteeAssignment
		leadership []*types.LeadershipRole
		bills      []*types.BillSponsorship
		finance    *types.CampaignFinance
		votes      []*types.VoteRecord
	)

	// Sub-queries are independent once the surrogate key is known.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if history, err = ps.serviceHistoryRepo.ListByLegislator(gctx, nil, legislator.ID); err != nil {
			return fmt.Errorf("service_history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if committees, err = ps.committeeRepo.ListByLegislator(gctx, nil, legislator.ID); err != nil {
			return fmt.Errorf("committees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if leadership, err = ps.leadershipRepo.ListByLegislator(gctx, nil, legislator.ID); err != nil {
			return fmt.Errorf("leadership_positions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if bills, err = ps.billRepo.ListRecentByLegislator(gctx, nil, legislator.ID, sponsoredBillsLimit); err != nil {
			return fmt.Errorf("sponsored_bills: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if finance, err = ps.financeRepo.GetLatestCycle(gctx, nil, legislator.ID); err != nil {
			return fmt.Errorf("finance_summary: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if votes, err = ps.voteRepo.ListRecentByLegislator(gctx, nil, legislator.ID, recentVotesLimit); err != nil {
			return fmt.Errorf("recent_votes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		ps.log.Error("Profile sub-query failed", "bioguide_id", bioguideID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}

	profile := &Profile{
		ID:                  legislator.ID,
		BioguideID:          legislator.BioguideID,
		FirstName:           legislator.FirstName,
		LastName:            legislator.LastName,
		FullName:            legislator.FullName,
		Gender:              legislator.Gender,
		Birthday:            legislator.Birthday,
		Party:               legislator.Party,
		State:               legislator.State,
		District:            legislator.District,
		Chamber:             legislator.Chamber,
		OfficialWebsiteURL:  legislator.OfficialWebsiteURL,
		OfficeContact:       legislator.OfficeContact,
		Bio:                 legislator.BioSnapshot,
		PortraitURL:         fmt.Sprintf("/portraits/%s.jpg", legislator.BioguideID),
		ServiceHistory:      emptyIfNil(history),
		Committees:          emptyIfNil(committees),
		LeadershipPositions: emptyIfNil(leadership),
		SponsoredBills:      emptyIfNil(bills),
		FinanceSummary:      financeSummary(finance),
		RecentVotes:         recentVotes(votes),
	}

	if ps.cache != nil {
		if raw, err := json.Marshal(profile); err == nil {
			ps.cache.Set(ctx, bioguideID, raw)
		}
	}
	return profile, nil
}

// financeSummary always yields an object, never null, so the client can
// render without a presence check.
func financeSummary(row *types.CampaignFinance) map[string]interface{} {
	if row == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"cycle":                  row.Cycle,
		"total_raised":           row.TotalRaised,
		"total_spent":            row.TotalSpent,
		"other_federal_receipts": row.OtherFederalReceipts,
		"top_donors":             row.TopDonors,
		"industry_breakdown":     row.IndustryBreakdown,
	}
}

func recentVotes(records []*types.VoteRecord) []RecentVote {
	out := make([]RecentVote, 0, len(records))
	for _, record := range records {
		vote := RecentVote{VoteCast: record.VoteCast}
		if record.VoteSession != nil {
			vote.VoteID = record.VoteSession.VoteID
			vote.Date = record.VoteSession.Date
			vote.BillNumber = record.VoteSession.BillNumber
			vote.Question = record.VoteSession.Question
			vote.Result = record.VoteSession.Result
		}
		out = append(out, vote)
	}
	return out
}

func emptyIfNil[T any](in []*T) []*T {
	if in == nil {
		return []*T{}
	}
	return in
}
