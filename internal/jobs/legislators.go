package jobs

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/unitedstates"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

const portraitSourceURL = "https://theunitedstates.io/images/congress/450x550/%s.jpg"

// LegislatorsJob refreshes the legislator roster plus the per-term
// service history, committee assignments, and leadership roles from the
// unitedstates legislators-current feed.
type LegislatorsJob struct {
	db                 *gorm.DB
	log                *logger.Logger
	client             *unitedstates.Client
	legislatorRepo     repos.LegislatorRepo
	serviceHistoryRepo repos.ServiceHistoryRepo
	committeeRepo      repos.CommitteeRepo
	leadershipRepo     repos.LeadershipRepo
}

func NewLegislatorsJob(
	db *gorm.DB,
	baseLog *logger.Logger,
	client *unitedstates.Client,
	legislatorRepo repos.LegislatorRepo,
	serviceHistoryRepo repos.ServiceHistoryRepo,
	committeeRepo repos.CommitteeRepo,
	leadershipRepo repos.LeadershipRepo,
) *LegislatorsJob {
	return &LegislatorsJob{
		db:                 db,
		log:                baseLog.With("job", "legislators"),
		client:             client,
		legislatorRepo:     legislatorRepo,
		serviceHistoryRepo: serviceHistoryRepo,
		committeeRepo:      committeeRepo,
		leadershipRepo:     leadershipRepo,
	}
}

func (j *LegislatorsJob) Name() string { return "legislators" }

func (j *LegislatorsJob) Run(ctx context.Context) error {
	j.log.Info("Starting legislator ETL run")

	entries, err := j.client.FetchCurrentLegislators(ctx)
	if err != nil {
		return fmt.Errorf("load legislators feed: %w", err)
	}

	var success, skipped, failed int
	for _, raw := range entries {
		legislator, ok := parseLegislator(raw)
		if !ok {
			skipped++
			continue
		}
		if err := j.upsertOne(ctx, legislator, raw.Terms); err != nil {
			j.log.Error("Failed processing legislator", "bioguide_id", legislator.BioguideID, "error", err)
			failed++
			continue
		}
		success++
	}

	j.log.Info("Legislator ETL summary", "inserted", success, "skipped", skipped, "failed", failed)
	return nil
}

func (j *LegislatorsJob) upsertOne(ctx context.Context, legislator *types.Legislator, terms []unitedstates.RawTerm) error {
	return j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saved, err := j.legislatorRepo.UpsertByBioguideID(ctx, tx, legislator)
		if err != nil {
			return fmt.Errorf("upsert legislator: %w", err)
		}

		history := make([]*types.ServiceHistory, 0, len(terms))
		assignments := []*types.CommitteeAssignment{}
		roles := []*types.LeadershipRole{}
		for _, term := range terms {
			if term.Start == "" {
				continue
			}
			if !validTermRange(term) {
				j.log.Warn("Dropping term with end date not after start",
					"bioguide_id", legislator.BioguideID, "start", term.Start, "end", term.End)
				continue
			}
			history = append(history, &types.ServiceHistory{
				LegislatorID: saved.ID,
				StartDate:    term.Start,
				EndDate:      nilIfEmpty(term.End),
				Chamber:      chamberForTermType(term.Type),
				State:        term.State,
				District:     districtForTerm(term),
				Party:        term.Party,
			})
			for _, committee := range term.Committees {
				assignments = append(assignments, &types.CommitteeAssignment{
					LegislatorID:     saved.ID,
					Congress:         term.Congress,
					CommitteeName:    committee.Name,
					SubcommitteeName: committee.Subcommittee,
					Role:             defaultIfEmpty(committee.Position, "Member"),
				})
			}
			if term.LeadershipTitle != "" {
				roles = append(roles, &types.LeadershipRole{
					LegislatorID: saved.ID,
					Congress:     term.Congress,
					Role:         term.LeadershipTitle,
				})
			}
		}

		if err := j.serviceHistoryRepo.UpsertTerms(ctx, tx, history); err != nil {
			return fmt.Errorf("upsert service history: %w", err)
		}
		if err := j.committeeRepo.UpsertAssignments(ctx, tx, assignments); err != nil {
			return fmt.Errorf("upsert committee assignments: %w", err)
		}
		if err := j.leadershipRepo.UpsertRoles(ctx, tx, roles); err != nil {
			return fmt.Errorf("upsert leadership roles: %w", err)
		}
		return nil
	})
}

// parseLegislator flattens one feed entry onto its most recent term.
// Entries without a bioguide id or a usable term are skipped.
func parseLegislator(raw unitedstates.RawLegislator) (*types.Legislator, bool) {
	if raw.ID.Bioguide == "" || len(raw.Terms) == 0 {
		return nil, false
	}

	valid := make([]unitedstates.RawTerm, 0, len(raw.Terms))
	for _, term := range raw.Terms {
		if term.Start != "" {
			valid = append(valid, term)
		}
	}
	if len(valid) == 0 {
		return nil, false
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start > valid[j].Start })
	term := valid[0]

	chamber := chamberForTermType(term.Type)
	if chamber == "" {
		return nil, false
	}

	fullName := raw.Name.First
	if raw.Name.Last != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += raw.Name.Last
	}

	snapshot := ""
	if raw.Bio.Birthday != "" || raw.Bio.Gender != "" {
		snapshot = fmt.Sprintf("%s – %s", raw.Bio.Birthday, raw.Bio.Gender)
	}

	return &types.Legislator{
		BioguideID:         raw.ID.Bioguide,
		IcpsrID:            icpsrString(raw.ID.Icpsr),
		FirstName:          raw.Name.First,
		LastName:           raw.Name.Last,
		FullName:           fullName,
		Gender:             raw.Bio.Gender,
		Birthday:           raw.Bio.Birthday,
		Party:              term.Party,
		State:              term.State,
		District:           districtForTerm(term),
		Chamber:            chamber,
		PortraitURL:        fmt.Sprintf(portraitSourceURL, raw.ID.Bioguide),
		OfficialWebsiteURL: term.URL,
		OfficeContact:      datatypes.JSON(unitedstates.MarshalAddress(term.Address)),
		BioSnapshot:        snapshot,
	}, true
}

// validTermRange reports whether a term's end date, when present, falls
// strictly after its start. Feed dates are ISO strings, so lexical
// comparison is safe.
func validTermRange(term unitedstates.RawTerm) bool {
	return term.End == "" || term.End > term.Start
}

func chamberForTermType(termType string) string {
	switch termType {
	case "rep":
		return "House"
	case "sen":
		return "Senate"
	default:
		return ""
	}
}

func districtForTerm(term unitedstates.RawTerm) *int {
	if term.Type != "rep" {
		return nil
	}
	return term.District
}

func icpsrString(icpsr int) *string {
	if icpsr == 0 {
		return nil
	}
	s := fmt.Sprintf("%d", icpsr)
	return &s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func defaultIfEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
