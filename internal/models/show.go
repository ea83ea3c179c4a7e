package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Show links one venue and one artist and carries its own start_time, so it
// is a full table rather than a bare join table. Rows are immutable once
// created. Whether a show is "upcoming" or "past" is computed against the
// clock at query time, never stored.
type Show struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ArtistID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartTime time.Time `gorm:"index"`
	Venue     Venue
	Artist    Artist
	CreatedAt time.Time
}

func (show *Show) BeforeCreate(tx *gorm.DB) (err error) {
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	return
}
