package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

type LegislatorRepo interface {
	GetByBioguideID(ctx context.Context, tx *gorm.DB, bioguideID string) (*types.Legislator, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, legislatorIDs []uuid.UUID) ([]*types.Legislator, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Legislator, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	BioguideIDMap(ctx context.Context, tx *gorm.DB) (map[string]uuid.UUID, error)
	UpsertByBioguideID(ctx context.Context, tx *gorm.DB, legislator *types.Legislator) (*types.Legislator, error)
}

type legislatorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLegislatorRepo(db *gorm.DB, baseLog *logger.Logger) LegislatorRepo {
	repoLog := baseLog.With("repo", "LegislatorRepo")
	return &legislatorRepo{db: db, log: repoLog}
}

func (lr *legislatorRepo) GetByBioguideID(ctx context.Context, tx *gorm.DB, bioguideID string) (*types.Legislator, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Legislator

	// Bioguide ids are opaque, case-sensitive tokens; no normalization.
	if err := transaction.WithContext(ctx).
		Where("bioguide_id = ?", bioguideID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *legislatorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, legislatorIDs []uuid.UUID) ([]*types.Legislator, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Legislator
	if len(legislatorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", legislatorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *legislatorRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Legislator, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Legislator

	// The id tiebreak keeps page boundaries stable for callers walking pages.
	if err := transaction.WithContext(ctx).
		Order("state ASC").
		Order("district ASC NULLS LAST").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *legislatorRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Legislator{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *legislatorRepo) BioguideIDMap(ctx context.Context, tx *gorm.DB) (map[string]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var rows []struct {
		ID         uuid.UUID
		BioguideID string
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Legislator{}).
		Select("id", "bioguide_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		result[row.BioguideID] = row.ID
	}
	return result, nil
}

func (lr *legislatorRepo) UpsertByBioguideID(ctx context.Context, tx *gorm.DB, legislator *types.Legislator) (*types.Legislator, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var existing types.Legislator
	err := transaction.WithContext(ctx).
		Where("bioguide_id = ?", legislator.BioguideID).
		First(&existing).Error
	if err == nil {
		legislator.ID = existing.ID
		if err := transaction.WithContext(ctx).
			Model(&existing).
			Select("icpsr_id", "first_name", "last_name", "full_name", "gender", "birthday",
				"party", "state", "district", "chamber", "portrait_url",
				"official_website_url", "office_contact", "bio_snapshot").
			Updates(legislator).Error; err != nil {
			return nil, err
		}
		return legislator, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if legislator.ID == uuid.Nil {
		legislator.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(legislator).Error; err != nil {
		return nil, err
	}
	return legislator, nil
}
