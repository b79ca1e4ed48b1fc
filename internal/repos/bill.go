package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type BillRepo interface {
	ListRecentByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID, limit int) ([]*types.BillSponsorship, error)
	UpsertBills(ctx context.Context, tx *gorm.DB, bills []*types.BillSponsorship) error
}

type billRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBillRepo(db *gorm.DB, baseLog *logger.Logger) BillRepo {
	repoLog := baseLog.With("repo", "BillRepo")
	return &billRepo{db: db, log: repoLog}
}

func (br *billRepo) ListRecentByLegislator(ctx context.Context, tx *gorm.DB, legislatorID uuid.UUID, limit int) ([]*types.BillSponsorship, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.BillSponsorship

	if err := transaction.WithContext(ctx).
		Where("legislator_id = ?", legislatorID).
		Order("introduced_date DESC NULLS LAST").
		Order("created_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *billRepo) UpsertBills(ctx context.Context, tx *gorm.DB, bills []*types.BillSponsorship) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(bills) == 0 {
		return nil
	}
	for _, bill := range bills {
		if bill.ID == uuid.Nil {
			bill.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "legislator_id"}, {Name: "bill_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "sponsorship_type", "status", "introduced_date"}),
		}).
		Create(&bills).Error
}
