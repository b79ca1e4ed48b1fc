package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

type stubLegislatorRepo struct {
	byBioguide map[string]*types.Legislator
	listItems  []*types.Legislator
	count      int64
	getErr     error
	listErr    error

	lastOffset int
	lastLimit  int
}

func (s *stubLegislatorRepo) GetByBioguideID(ctx context.Context, tx *gorm.DB, bioguideID string) (*types.Legislator, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if l, ok := s.byBioguide[bioguideID]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLegislatorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Legislator, error) {
	return nil, nil
}

func (s *stubLegislatorRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Legislator, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.lastOffset = offset
	s.lastLimit = limit
	if offset >= len(s.listItems) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.listItems) {
		end = len(s.listItems)
	}
	return s.listItems[offset:end], nil
}

func (s *stubLegislatorRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return s.count, nil
}

func (s *stubLegislatorRepo) BioguideIDMap(ctx context.Context, tx *gorm.DB) (map[string]uuid.UUID, error) {
	out := map[string]uuid.UUID{}
	for k, v := range s.byBioguide {
		out[k] = v.ID
	}
	return out, nil
}

func (s *stubLegislatorRepo) UpsertByBioguideID(ctx context.Context, tx *gorm.DB, legislator *types.Legislator) (*types.Legislator, error) {
	return legislator, nil
}

type stubServiceHistoryRepo struct {
	terms []*types.ServiceHistory
	err   error
}

func (s *stubServiceHistoryRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.ServiceHistory, error) {
	return s.terms, s.err
}

func (s *stubServiceHistoryRepo) UpsertTerms(ctx context.Context, tx *gorm.DB, terms []*types.ServiceHistory) error {
	return nil
}

type stubCommitteeRepo struct {
	assignments []*types.CommitteeAssignment
	err         error
}

func (s *stubCommitteeRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.CommitteeAssignment, error) {
	return s.assignments, s.err
}

func (s *stubCommitteeRepo) UpsertAssignments(ctx context.Context, tx *gorm.DB, assignments []*types.CommitteeAssignment) error {
	return nil
}

type stubLeadershipRepo struct {
	roles []*types.LeadershipRole
	err   error
}

func (s *stubLeadershipRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.LeadershipRole, error) {
	return s.roles, s.err
}

func (s *stubLeadershipRepo) UpsertRoles(ctx context.Context, tx *gorm.DB, roles []*types.LeadershipRole) error {
	return nil
}

type stubBillRepo struct {
	bills     []*types.BillSponsorship
	err       error
	lastLimit int
}

func (s *stubBillRepo) ListRecentByLegislator(ctx context.Context, tx *gorm.DB, id uuid.UUID, limit int) ([]*types.BillSponsorship, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.bills) > limit {
		return s.bills[:limit], nil
	}
	return s.bills, nil
}

func (s *stubBillRepo) UpsertBills(ctx context.Context, tx *gorm.DB, bills []*types.BillSponsorship) error {
	return nil
}

type stubFinanceRepo struct {
	row *types.CampaignFinance
	err error
}

func (s *stubFinanceRepo) GetLatestCycle(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CampaignFinance, error) {
	return s.row, s.err
}

func (s *stubFinanceRepo) UpsertFinance(ctx context.Context, tx *gorm.DB, rows []*types.CampaignFinance) error {
	return nil
}

type stubVoteRepo struct {
	records   []*types.VoteRecord
	sessions  []*types.VoteSession
	err       error
	lastLimit int
}

func (s *stubVoteRepo) ListRecentByLegislator(ctx context.Context, tx *gorm.DB, id uuid.UUID, limit int) ([]*types.VoteRecord, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.records) > limit {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func (s *stubVoteRepo) GetSessionByVoteID(ctx context.Context, tx *gorm.DB, voteID string) (*types.VoteSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, session := range s.sessions {
		if session.VoteID == voteID {
			return session, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVoteRepo) ListSessions(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.VoteSession, error) {
	return s.sessions, s.err
}

func (s *stubVoteRepo) ListRecordsBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.VoteRecord, error) {
	return s.records, nil
}

func (s *stubVoteRepo) UpsertSession(ctx context.Context, tx *gorm.DB, session *types.VoteSession) (*types.VoteSession, error) {
	return session, nil
}

func (s *stubVoteRepo) UpsertRecords(ctx context.Context, tx *gorm.DB, records []*types.VoteRecord) error {
	return nil
}
