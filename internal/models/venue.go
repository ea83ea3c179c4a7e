package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Name               string    `gorm:"not null"`
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool `gorm:"default:false"`
	SeekingDescription string
	Genres             []VenueGenre `gorm:"foreignKey:VenueID"`
	Shows              []Show       `gorm:"foreignKey:VenueID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (venue *Venue) BeforeCreate(tx *gorm.DB) (err error) {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	return
}
