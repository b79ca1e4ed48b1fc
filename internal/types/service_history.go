package types

import (
	"time"

	"github.com/google/uuid"
)

// One row per term served. End date is open for sitting members.
type ServiceHistory struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegislatorID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uniq_service_history_term,priority:1" json:"legislator_id"`
	Legislator   *Legislator `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	StartDate    string      `gorm:"not null;column:start_date;uniqueIndex:uniq_service_history_term,priority:2" json:"start_date"`
	EndDate      *string     `gorm:"column:end_date" json:"end_date"`
	Chamber      string      `gorm:"column:chamber" json:"chamber"`
	State        string      `gorm:"column:state" json:"state"`
	District     *int        `gorm:"column:district" json:"district"`
	Party        string      `gorm:"column:party" json:"party"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (ServiceHistory) TableName() string { return "service_history" }
