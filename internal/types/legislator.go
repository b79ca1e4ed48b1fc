package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Legislator struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BioguideID         string         `gorm:"uniqueIndex;not null;column:bioguide_id" json:"bioguide_id"`
	IcpsrID            *string        `gorm:"column:icpsr_id" json:"icpsr_id,omitempty"`
	FirstName          string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName           string         `gorm:"not null;column:last_name" json:"last_name"`
	FullName           string         `gorm:"not null;column:full_name" json:"full_name"`
	Gender             string         `gorm:"column:gender" json:"gender"`
	Birthday           string         `gorm:"column:birthday" json:"birthday"`
	Party              string         `gorm:"column:party;index" json:"party"`
	State              string         `gorm:"column:state;index" json:"state"`
	District           *int           `gorm:"column:district" json:"district"`
	Chamber            string         `gorm:"column:chamber;index" json:"chamber"`
	PortraitURL        string         `gorm:"column:portrait_url" json:"-"`
	OfficialWebsiteURL string         `gorm:"column:official_website_url" json:"official_website_url"`
	OfficeContact      datatypes.JSON `gorm:"column:office_contact;type:jsonb" json:"office_contact"`
	BioSnapshot        string         `gorm:"column:bio_snapshot" json:"-"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Legislator) TableName() string { return "legislators" }
