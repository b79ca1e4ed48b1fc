package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SponsorshipSponsor   = "Sponsor"
	SponsorshipCosponsor = "Cosponsor"
)

type BillSponsorship struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegislatorID    uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uniq_bill_sponsorship,priority:1" json:"legislator_id"`
	Legislator      *Legislator `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	BillNumber      string      `gorm:"not null;column:bill_number;uniqueIndex:uniq_bill_sponsorship,priority:2" json:"bill_number"`
	Title           string      `gorm:"column:title" json:"title"`
	SponsorshipType string      `gorm:"column:sponsorship_type;default:Sponsor" json:"sponsorship_type"`
	Status          string      `gorm:"column:status" json:"status"`
	IntroducedDate  *time.Time  `gorm:"column:introduced_date;index" json:"introduced_date"`
	CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (BillSponsorship) TableName() string { return "sponsored_bills" }
