package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/capitolwatch/capitolwatch-backend/internal/apierr"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

func newProfileFixture(t *testing.T) (*stubLegislatorRepo, *stubServiceHistoryRepo, *stubCommitteeRepo, *stubLeadershipRepo, *stubBillRepo, *stubFinanceRepo, *stubVoteRepo, ProfileService) {
	t.Helper()
	legislators := &stubLegislatorRepo{byBioguide: map[string]*types.Legislator{
		"B000944": {
			ID:          uuid.New(),
			BioguideID:  "B000944",
			FirstName:   "Sherrod",
			LastName:    "Brown",
			FullName:    "Sherrod Brown",
			Party:       "Democrat",
			State:       "OH",
			Chamber:     "Senate",
			BioSnapshot: "1952-11-09 – M",
		},
	}}
	history := &stubServiceHistoryRepo{}
	committees := &stubCommitteeRepo{}
	leadership := &stubLeadershipRepo{}
	bills := &stubBillRepo{}
	finance := &stubFinanceRepo{}
	votes := &stubVoteRepo{}
	svc := NewProfileService(nil, testLogger(t), legislators, history, committees, leadership, bills, finance, votes, nil)
	return legislators, history, committees, leadership, bills, finance, votes, svc
}

func TestGetProfile_UnknownIDReturns404(t *testing.T) {
	_, _, _, _, _, _, _, svc := newProfileFixture(t)

	_, err := svc.GetProfile(context.Background(), "Z999999")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierr.Error, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %s", apiErr.Status, apiErr.Code)
	}
}

func TestGetProfile_EmptySectionsAssembleAsEmptyNotNull(t *testing.T) {
	_, _, _, _, _, _, _, svc := newProfileFixture(t)

	profile, err := svc.GetProfile(context.Background(), "B000944")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.ServiceHistory == nil || profile.Committees == nil ||
		profile.LeadershipPositions == nil || profile.SponsoredBills == nil {
		t.Fatalf("expected empty slices, got nils: %+v", profile)
	}
	if profile.FinanceSummary == nil || len(profile.FinanceSummary) != 0 {
		t.Fatalf("expected empty finance summary object, got %v", profile.FinanceSummary)
	}
	if profile.RecentVotes == nil {
		t.Fatalf("expected empty recent votes slice")
	}
}

func TestGetProfile_DerivedFields(t *testing.T) {
	_, _, _, _, _, _, _, svc := newProfileFixture(t)

	profile, err := svc.GetProfile(context.Background(), "B000944")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.PortraitURL != "/portraits/B000944.jpg" {
		t.Fatalf("unexpected portrait url %q", profile.PortraitURL)
	}
	if profile.Bio != "1952-11-09 – M" {
		t.Fatalf("unexpected bio %q", profile.Bio)
	}
}

func TestGetProfile_SectionLimitsApplied(t *testing.T) {
	_, _, _, _, bills, _, votes, svc := newProfileFixture(t)

	for i := 0; i < 30; i++ {
		bills.bills = append(bills.bills, &types.BillSponsorship{BillNumber: fmt.Sprintf("H.R. %d", i)})
		votes.records = append(votes.records, &types.VoteRecord{
			VoteCast:    types.VoteCastYea,
			VoteSession: &types.VoteSession{VoteID: fmt.Sprintf("h%d-119.1", i), Date: time.Now()},
		})
	}

	profile, err := svc.GetProfile(context.Background(), "B000944")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if bills.lastLimit != 10 {
		t.Fatalf("expected sponsored bills limit 10, repo saw %d", bills.lastLimit)
	}
	if votes.lastLimit != 20 {
		t.Fatalf("expected recent votes limit 20, repo saw %d", votes.lastLimit)
	}
	if len(profile.SponsoredBills) != 10 {
		t.Fatalf("expected 10 sponsored bills, got %d", len(profile.SponsoredBills))
	}
	if len(profile.RecentVotes) != 20 {
		t.Fatalf("expected 20 recent votes, got %d", len(profile.RecentVotes))
	}
}

func TestGetProfile_FinanceSummaryFromLatestCycle(t *testing.T) {
	_, _, _, _, _, finance, _, svc := newProfileFixture(t)
	finance.row = &types.CampaignFinance{
		Cycle:       2024,
		TotalRaised: 1234.5,
		TotalSpent:  1000,
	}

	profile, err := svc.GetProfile(context.Background(), "B000944")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.FinanceSummary["cycle"] != 2024 {
		t.Fatalf("unexpected cycle %v", profile.FinanceSummary["cycle"])
	}
	if profile.FinanceSummary["total_raised"] != 1234.5 {
		t.Fatalf("unexpected total_raised %v", profile.FinanceSummary["total_raised"])
	}
}

func TestGetProfile_SubQueryFailureFailsWholeCall(t *testing.T) {
	cases := []struct {
		name  string
		wire  func(*stubServiceHistoryRepo, *stubCommitteeRepo, *stubLeadershipRepo, *stubBillRepo, *stubFinanceRepo, *stubVoteRepo)
		label string
	}{
		{"service history", func(h *stubServiceHistoryRepo, _ *stubCommitteeRepo, _ *stubLeadershipRepo, _ *stubBillRepo, _ *stubFinanceRepo, _ *stubVoteRepo) {
			h.err = errors.New("boom")
		}, "service_history"},
		{"finance", func(_ *stubServiceHistoryRepo, _ *stubCommitteeRepo, _ *stubLeadershipRepo, _ *stubBillRepo, f *stubFinanceRepo, _ *stubVoteRepo) {
			f.err = errors.New("boom")
		}, "finance_summary"},
		{"votes", func(_ *stubServiceHistoryRepo, _ *stubCommitteeRepo, _ *stubLeadershipRepo, _ *stubBillRepo, _ *stubFinanceRepo, v *stubVoteRepo) {
			v.err = errors.New("boom")
		}, "recent_votes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, history, committees, leadership, bills, finance, votes, svc := newProfileFixture(t)
			tc.wire(history, committees, leadership, bills, finance, votes)

			_, err := svc.GetProfile(context.Background(), "B000944")
			var apiErr *apierr.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected apierr.Error, got %v", err)
			}
			if apiErr.Status != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", apiErr.Status)
			}
			if !strings.Contains(err.Error(), tc.label) {
				t.Fatalf("expected error to name section %q, got %v", tc.label, err)
			}
		})
	}
}

func TestGetProfile_CoreFailureSkipsSubQueries(t *testing.T) {
	legislators, history, _, _, _, _, _, svc := newProfileFixture(t)
	legislators.getErr = errors.New("db down")
	history.err = errors.New("must not be reached")

	_, err := svc.GetProfile(context.Background(), "B000944")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierr.Error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Code != "internal_error" {
		t.Fatalf("expected 500 internal_error, got %d %s", apiErr.Status, apiErr.Code)
	}
	if strings.Contains(err.Error(), "must not be reached") {
		t.Fatalf("sub-query ran despite core lookup failure")
	}
}
