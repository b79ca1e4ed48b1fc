package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type VoteRepo interface {
	ListRecentByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID, limit int) ([]*types.VoteRecord, error)
	GetSessionByVoteID(ctx context.Context, tx *gorm.DB, voteID string) (*types.VoteSession, error)
	ListSessions(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.VoteSession, error)
	ListRecordsBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.VoteRecord, error)
	UpsertSession(ctx context.Context, tx *gorm.DB, session *types.VoteSession) (*types.VoteSession, error)
	UpsertRecords(ctx context.Context, tx *gorm.DB, records []*types.VoteRecord) error
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	repoLog := baseLog.With("repo", "VoteRepo")
	return &voteRepo{db: db, log: repoLog}
}

func (vr *voteRepo) ListRecentByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID, limit int) ([]*types.VoteRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.VoteRecord

	if err := transaction.WithContext(ctx).
		Joins("JOIN vote_sessions ON vote_sessions.id = vote_records.vote_session_id").
		Where("vote_records.legislator_id = ?", legislatorID).
		Order("vote_sessions.date DESC").
		Order("vote_sessions.roll DESC").
		Limit(limit).
		Preload("VoteSession").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voteRepo) GetSessionByVoteID(ctx context.Context, tx *gorm.DB, voteID string) (*types.VoteSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.VoteSession

	if err := transaction.WithContext(ctx).
		Where("vote_id = ?", voteID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *voteRepo) ListSessions(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.VoteSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.VoteSession

	if err := transaction.WithContext(ctx).
		Order("date DESC").
		Order("roll DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voteRepo) ListRecordsBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.VoteRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.VoteRecord

	if err := transaction.WithContext(ctx).
		Where("vote_session_id = ?", sessionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voteRepo) UpsertSession(ctx context.Context, tx *gorm.DB, session *types.VoteSession) (*types.VoteSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var existing types.VoteSession
	err := transaction.WithContext(ctx).
		Where("vote_id = ?", session.VoteID).
		First(&existing).Error
	if err == nil {
		session.ID = existing.ID
		if err := transaction.WithContext(ctx).
			Model(&existing).
			Select("congress", "session", "roll", "chamber", "date", "bill_number",
				"question", "description", "result",
				"tally_yea", "tally_nay", "tally_present", "tally_not_voting", "key_vote").
			Updates(session).Error; err != nil {
			return nil, err
		}
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (vr *voteRepo) UpsertRecords(ctx context.Context, tx *gorm.DB, records []*types.VoteRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if len(records) == 0 {
		return nil
	}
	for _, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vote_session_id"}, {Name: "legislator_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote_cast"}),
		}).
		Create(&records).Error
}
