package types

import (
	"time"

	"github.com/google/uuid"
)

type LeadershipRole struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegislatorID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uniq_leadership_role,priority:1" json:"legislator_id"`
	Legislator   *Legislator `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatorID;references:ID" json:"-"`
	Congress     int         `gorm:"not null;column:congress;uniqueIndex:uniq_leadership_role,priority:2" json:"congress"`
	Role         string      `gorm:"not null;column:role;uniqueIndex:uniq_leadership_role,priority:3" json:"role"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (LeadershipRole) TableName() string { return "leadership_roles" }
