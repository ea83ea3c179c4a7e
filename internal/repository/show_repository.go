package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/andrianrf/gigbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShowListing is one row of the shows page, flattened for display.
type ShowListing struct {
	VenueID         uuid.UUID
	VenueName       string
	ArtistID        uuid.UUID
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

type ShowRepository struct {
	db *gorm.DB
}

func NewShowRepository(db *gorm.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

// List returns every show with its venue and artist display fields.
func (r *ShowRepository) List(ctx context.Context) ([]ShowListing, error) {
	var shows []models.Show
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Artist").
		Order("start_time").
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	listings := []ShowListing{}
	for _, show := range shows {
		listings = append(listings, ShowListing{
			VenueID:         show.Venue.ID,
			VenueName:       show.Venue.Name,
			ArtistID:        show.Artist.ID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       show.StartTime,
		})
	}
	return listings, nil
}

// Create inserts one show referencing the given venue and artist. Referential
// validity is left to the database's foreign-key constraints; shows are
// immutable once created.
func (r *ShowRepository) Create(ctx context.Context, venueID, artistID uuid.UUID, startTime time.Time) (*models.Show, error) {
	show := models.Show{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: startTime,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&show).Error; err != nil {
			return err
		}
		return tx.Preload("Venue").Preload("Artist").First(&show, "id = ?", show.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	return &show, nil
}
