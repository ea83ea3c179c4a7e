package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genres are multi-valued, so they live in child tables (one name per row)
// keyed to their owning venue or artist rather than in an array column.

type VenueGenre struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	VenueID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (genre *VenueGenre) BeforeCreate(tx *gorm.DB) (err error) {
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	return
}

type ArtistGenre struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Name     string    `gorm:"not null"`
	ArtistID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (genre *ArtistGenre) BeforeCreate(tx *gorm.DB) (err error) {
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	return
}
