package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type ServiceHistoryRepo interface {
	ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.ServiceHistory, error)
	UpsertTerms(ctx context.Context, tx *gorm.DB, terms []*types.ServiceHistory) error
}

type serviceHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceHistoryRepo(db *gorm.DB, baseLog *logger.Logger) ServiceHistoryRepo {
	repoLog := baseLog.With("repo", "ServiceHistoryRepo")
	return &serviceHistoryRepo{db: db, log: repoLog}
}

func (sr *serviceHistoryRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.ServiceHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.ServiceHistory

	if err := transaction.WithContext(ctx).
		Where("legislator_id = ?", legislatorID).
		Order("start_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *serviceHistoryRepo) UpsertTerms(ctx context.Context, tx *gorm.DB, terms []*types.ServiceHistory) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(terms) == 0 {
		return nil
	}
	for _, term := range terms {
		if term.ID == uuid.Nil {
			term.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "legislator_id"}, {Name: "start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"end_date", "chamber", "state", "district", "party"}),
		}).
		Create(&terms).Error
}
