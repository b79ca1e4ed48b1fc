package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CampaignFinance struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegislatorID         uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_campaign_finance_cycle,priority:1" json:"legislator_id"`
	Legislator           *Legislator    `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	Cycle                int            `gorm:"not null;column:cycle;uniqueIndex:uniq_campaign_finance_cycle,priority:2" json:"cycle"`
	TotalRaised          float64        `gorm:"column:total_raised;default:0" json:"total_raised"`
	TotalSpent           float64        `gorm:"column:total_spent;default:0" json:"total_spent"`
	OtherFederalReceipts float64        `gorm:"column:other_federal_receipts;default:0" json:"other_federal_receipts"`
	TopDonors            datatypes.JSON `gorm:"column:top_donors;type:jsonb" json:"top_donors"`
	IndustryBreakdown    datatypes.JSON `gorm:"column:industry_breakdown;type:jsonb" json:"industry_breakdown"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CampaignFinance) TableName() string { return "campaign_finance" }
