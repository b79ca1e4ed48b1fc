package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type FECCandidateRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.FECCandidate, error)
	UpsertCandidates(ctx context.Context, tx *gorm.DB, candidates []*types.FECCandidate) error
}

type fecCandidateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFECCandidateRepo(db *gorm.DB, baseLog *logger.Logger) FECCandidateRepo {
	repoLog := baseLog.With("repo", "FECCandidateRepo")
	return &fecCandidateRepo{db: db, log: repoLog}
}

func (fr *fecCandidateRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.FECCandidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FECCandidate

	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *fecCandidateRepo) UpsertCandidates(ctx context.Context, tx *gorm.DB, candidates []*types.FECCandidate) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(candidates) == 0 {
		return nil
	}
	for _, candidate := range candidates {
		if candidate.ID == uuid.Nil {
			candidate.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fec_id"}, {Name: "cycle"}},
			DoUpdates: clause.AssignmentColumns([]string{"bioguide_id"}),
		}).
		Create(&candidates).Error
}
