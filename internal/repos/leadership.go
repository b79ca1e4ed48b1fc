package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type LeadershipRepo interface {
	ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.LeadershipRole, error)
	UpsertRoles(ctx context.Context, tx *gorm.DB, roles []*types.LeadershipRole) error
}

type leadershipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadershipRepo(db *gorm.DB, baseLog *logger.Logger) LeadershipRepo {
	repoLog := baseLog.With("repo", "LeadershipRepo")
	return &leadershipRepo{db: db, log: repoLog}
}

func (lr *leadershipRepo) ListByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) ([]*types.LeadershipRole, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.LeadershipRole

	if err := transaction.WithContext(ctx).
		Where("legislator_id = ?", legislatorID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *leadershipRepo) UpsertRoles(ctx context.Context, tx *gorm.DB, roles []*types.LeadershipRole) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(roles) == 0 {
		return nil
	}
	for _, role := range roles {
		if role.ID == uuid.Nil {
			role.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "legislator_id"}, {Name: "congress"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&roles).Error
}
