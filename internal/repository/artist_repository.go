package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrianrf/gigbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtistInput carries the form fields for creating or updating an artist.
type ArtistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
	Genres             []string
}

func (in ArtistInput) validate() error {
	if in.Name == "" || in.City == "" || in.State == "" {
		return fmt.Errorf("%w: name, city and state are required", ErrInvalidInput)
	}
	return nil
}

// ArtistShow is one show on an artist's schedule, annotated with the venue
// fields the artist page displays.
type ArtistShow struct {
	VenueID        uuid.UUID
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// ArtistDetail is the view-model for the artist page.
type ArtistDetail struct {
	ID                 uuid.UUID
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
	Genres             []string
	PastShows          []ArtistShow
	UpcomingShows      []ArtistShow
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// List returns artists in insertion order, at most limit rows when limit > 0.
func (r *ArtistRepository) List(ctx context.Context, limit int) ([]models.Artist, error) {
	query := r.db.WithContext(ctx).Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var artists []models.Artist
	if err := query.Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// Search matches artist names case-insensitively against a substring. An
// empty term matches every artist.
func (r *ArtistRepository) Search(ctx context.Context, term string) (*SearchResult, error) {
	var artists []models.Artist
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?)", "%"+term+"%").
		Order("created_at").
		Find(&artists).Error
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}

	now := time.Now()
	result := &SearchResult{Count: len(artists), Data: []SearchRow{}}
	for _, artist := range artists {
		var upcoming int64
		err := r.db.WithContext(ctx).Model(&models.Show{}).
			Where("artist_id = ? AND start_time >= ?", artist.ID, now).
			Count(&upcoming).Error
		if err != nil {
			return nil, fmt.Errorf("count upcoming shows: %w", err)
		}
		result.Data = append(result.Data, SearchRow{
			ID:               artist.ID,
			Name:             artist.Name,
			NumUpcomingShows: int(upcoming),
		})
	}
	return result, nil
}

// GetByID returns the artist page view-model with shows partitioned into past
// and upcoming.
func (r *ArtistRepository) GetByID(ctx context.Context, id uuid.UUID) (*ArtistDetail, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).Preload("Genres").Where("id = ?", id).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}

	var shows []models.Show
	err = r.db.WithContext(ctx).Preload("Venue").
		Where("artist_id = ?", id).
		Order("start_time").
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("get artist shows: %w", err)
	}

	detail := &ArtistDetail{
		ID:                 artist.ID,
		Name:               artist.Name,
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		ImageLink:          artist.ImageLink,
		FacebookLink:       artist.FacebookLink,
		Website:            artist.Website,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		Genres:             []string{},
		PastShows:          []ArtistShow{},
		UpcomingShows:      []ArtistShow{},
	}
	for _, genre := range artist.Genres {
		detail.Genres = append(detail.Genres, genre.Name)
	}

	now := time.Now()
	for _, show := range shows {
		entry := ArtistShow{
			VenueID:        show.Venue.ID,
			VenueName:      show.Venue.Name,
			VenueImageLink: show.Venue.ImageLink,
			StartTime:      show.StartTime,
		}
		if show.StartTime.Before(now) {
			detail.PastShows = append(detail.PastShows, entry)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// Create inserts the artist and its genre rows as one transaction.
func (r *ArtistRepository) Create(ctx context.Context, input ArtistInput) (*models.Artist, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	artist := models.Artist{
		Name:               input.Name,
		City:               input.City,
		State:              input.State,
		Phone:              input.Phone,
		ImageLink:          input.ImageLink,
		FacebookLink:       input.FacebookLink,
		Website:            input.Website,
		SeekingVenue:       input.SeekingVenue,
		SeekingDescription: input.SeekingDescription,
	}
	for _, name := range input.Genres {
		artist.Genres = append(artist.Genres, models.ArtistGenre{Name: name})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&artist).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	return &artist, nil
}

// Update overwrites every artist field from the input and replaces the whole
// genre set, as one transaction.
func (r *ArtistRepository) Update(ctx context.Context, id uuid.UUID, input ArtistInput) (*models.Artist, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var artist models.Artist
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&artist).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		artist.Name = input.Name
		artist.City = input.City
		artist.State = input.State
		artist.Phone = input.Phone
		artist.ImageLink = input.ImageLink
		artist.FacebookLink = input.FacebookLink
		artist.Website = input.Website
		artist.SeekingVenue = input.SeekingVenue
		artist.SeekingDescription = input.SeekingDescription

		if err := tx.Save(&artist).Error; err != nil {
			return err
		}

		if err := tx.Where("artist_id = ?", id).Delete(&models.ArtistGenre{}).Error; err != nil {
			return err
		}
		for _, name := range input.Genres {
			genre := models.ArtistGenre{Name: name, ArtistID: id}
			if err := tx.Create(&genre).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update artist: %w", err)
	}
	return &artist, nil
}
