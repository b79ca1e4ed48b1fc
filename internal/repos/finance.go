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

type FinanceRepo interface {
	GetLatestCycle(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) (*types.CampaignFinance, error)
	UpsertFinance(ctx context.Context, tx *gorm.DB, rows []*types.CampaignFinance) error
}

type financeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinanceRepo(db *gorm.DB, baseLog *logger.Logger) FinanceRepo {
	repoLog := baseLog.With("repo", "FinanceRepo")
	return &financeRepo{db: db, log: repoLog}
}

// GetLatestCycle returns nil (not an error) when the legislator has no
// finance rows; the profile contract renders that as an empty object.
func (fr *financeRepo) GetLatestCycle(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID) (*types.CampaignFinance, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var result types.CampaignFinance

	err := transaction.WithContext(ctx).
		Where("legislator_id = ?", legislatorID).
		Order("cycle DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (fr *financeRepo) UpsertFinance(ctx context.Context, tx *gorm.DB, rows []*types.CampaignFinance) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "legislator_id"}, {Name: "cycle"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_raised", "total_spent", "other_federal_receipts",
				"top_donors", "industry_breakdown",
			}),
		}).
		Create(&rows).Error
}
