package services

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/apierr"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 24
	MaxPageSize     = 100
)

type LegislatorPage struct {
	Items      []*types.Legislator `json:"items"`
	TotalCount int64               `json:"totalCount"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
}

type LegislatorService interface {
	List(ctx context.Context, page, pageSize int) (*LegislatorPage, error)
}

type legislatorService struct {
	db             *gorm.DB
	log            *logger.Logger
	legislatorRepo repos.LegislatorRepo
}

func NewLegislatorService(db *gorm.DB, log *logger.Logger, legislatorRepo repos.LegislatorRepo) LegislatorService {
	serviceLog := log.With("service", "LegislatorService")
	return &legislatorService{db: db, log: serviceLog, legislatorRepo: legislatorRepo}
}

// ClampPage recovers invalid pagination input to defaults. Bad input is
// never an error condition for the listing endpoint.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (ls *legislatorService) List(ctx context.Context, page, pageSize int) (*LegislatorPage, error) {
	page, pageSize = ClampPage(page, pageSize)
	offset := (page - 1) * pageSize

	items, err := ls.legislatorRepo.List(ctx, nil, offset, pageSize)
	if err != nil {
		ls.log.Error("Legislator list query failed", "page", page, "pageSize", pageSize, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
	totalCount, err := ls.legislatorRepo.Count(ctx, nil)
	if err != nil {
		ls.log.Error("Legislator count query failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error", err)
	}

	if items == nil {
		items = []*types.Legislator{}
	}
	return &LegislatorPage{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
