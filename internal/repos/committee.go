package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type CommitteeRepo interface {
	ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.CommitteeAssignment, error)
	UpsertAssignments(ctx context.Context, tx *gorm.DB, assignments []*types.CommitteeAssignment) error
}

type committeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommitteeRepo(db *gorm.DB, baseLog *logger.Logger) CommitteeRepo {
	repoLog := baseLog.With("repo", "CommitteeRepo")
	return &committeeRepo{db: db, log: repoLog}
}

func (cr *committeeRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.CommitteeAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.CommitteeAssignment

	if err := transaction.WithContext(ctx).
		Where("legislator_id = ?", legislatorID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *committeeRepo) UpsertAssignments(ctx context.Context, tx *gorm.DB, assignments []*types.CommitteeAssignment) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(assignments) == 0 {
		return nil
	}
	for _, assignment := range assignments {
		if assignment.ID == uuid.Nil {
			assignment.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "legislator_id"}, {Name: "congress"},
				{Name: "committee_name"}, {Name: "subcommittee_name"},
			},
			DoNothing: true,
		}).
		Create(&assignments).Error
}
