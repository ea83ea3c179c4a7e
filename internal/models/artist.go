package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artist struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Name               string    `gorm:"not null"`
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool `gorm:"default:false"`
	SeekingDescription string
	Genres             []ArtistGenre `gorm:"foreignKey:ArtistID"`
	Shows              []Show        `gorm:"foreignKey:ArtistID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (artist *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	return
}
