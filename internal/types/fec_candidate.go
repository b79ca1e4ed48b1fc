package types

import (
	"time"

	"github.com/google/uuid"
)

// Mapping table the finance ETL walks: which FEC candidate ids to pull
// totals for, and which legislator they belong to.
type FECCandidate struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FECID      string    `gorm:"not null;column:fec_id;uniqueIndex:uniq_fec_candidate_cycle,priority:1" json:"fec_id"`
	BioguideID string    `gorm:"not null;column:bioguide_id;index" json:"bioguide_id"`
	Cycle      int       `gorm:"not null;column:cycle;uniqueIndex:uniq_fec_candidate_cycle,priority:2" json:"cycle"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FECCandidate) TableName() string { return "fec_candidates" }
