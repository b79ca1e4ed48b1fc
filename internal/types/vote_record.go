package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	VoteCastYea       = "Yea"
	VoteCastNay       = "Nay"
	VoteCastPresent   = "Present"
	VoteCastNotVoting = "Not Voting"
	VoteCastAbsent    = "Absent"
	VoteCastUnknown   = "Unknown"
)

type VoteRecord struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VoteSessionID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:uniq_vote_record,priority:1" json:"vote_session_id"`
	VoteSession   *VoteSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:VoteSessionID;references:ID" json:"-"`
	LegislatorID  uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:uniq_vote_record,priority:2" json:"legislator_id"`
	Legislator    *Legislator  `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	VoteCast      string       `gorm:"not null;column:vote_cast" json:"vote_cast"`
	CreatedAt     time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (VoteRecord) TableName() string { return "vote_records" }
