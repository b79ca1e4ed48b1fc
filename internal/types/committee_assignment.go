package types

import (
	"time"

	"github.com/google/uuid"
)

type CommitteeAssignment struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegislatorID     uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uniq_committee_assignment,priority:1" json:"legislator_id"`
	Legislator       *Legislator `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	Congress         int         `gorm:"not null;column:congress;uniqueIndex:uniq_committee_assignment,priority:2" json:"congress"`
	CommitteeName    string      `gorm:"not null;column:committee_name;uniqueIndex:uniq_committee_assignment,priority:3" json:"committee_name"`
	SubcommitteeName string      `gorm:"column:subcommittee_name;uniqueIndex:uniq_committee_assignment,priority:4" json:"subcommittee_name"`
	Role             string      `gorm:"column:role;default:Member" json:"role"`
	CreatedAt        time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (CommitteeAssignment) TableName() string { return "committee_assignments" }
