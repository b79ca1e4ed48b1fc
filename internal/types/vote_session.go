package types

import (
	"time"

	"github.com/google/uuid"
)

// One chamber-wide roll call. Individual cast positions live in VoteRecord.
type VoteSession struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VoteID          string     `gorm:"uniqueIndex;not null;column:vote_id" json:"vote_id"`
	Congress        int        `gorm:"not null;column:congress" json:"congress"`
	Session         int        `gorm:"not null;column:session" json:"session"`
	Roll            int        `gorm:"not null;column:roll" json:"roll"`
	Chamber         string     `gorm:"not null;column:chamber" json:"chamber"`
	Date            time.Time  `gorm:"not null;column:date;index" json:"date"`
	BillNumber      string     `gorm:"column:bill_number" json:"bill_number"`
	Question        string     `gorm:"column:question" json:"question"`
	Description     string     `gorm:"column:description" json:"description"`
	Result          string     `gorm:"column:result" json:"result"`
	TallyYea        int        `gorm:"column:tally_yea;default:0" json:"tally_yea"`
	TallyNay        int        `gorm:"column:tally_nay;default:0" json:"tally_nay"`
	TallyPresent    int        `gorm:"column:tally_present;default:0" json:"tally_present"`
	TallyNotVoting  int        `gorm:"column:tally_not_voting;default:0" json:"tally_not_voting"`
	KeyVote         bool       `gorm:"column:key_vote;default:false" json:"key_vote"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (VoteSession) TableName() string { return "vote_sessions" }
