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

// VenueInput carries the form fields for creating or updating a venue. An
// update overwrites every field from the input; there are no partial updates.
type VenueInput struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
	Genres             []string
}

func (in VenueInput) validate() error {
	if in.Name == "" || in.City == "" || in.State == "" {
		return fmt.Errorf("%w: name, city and state are required", ErrInvalidInput)
	}
	return nil
}

// VenueShow is one show on a venue's schedule, annotated with the artist
// fields the venue page displays.
type VenueShow struct {
	ArtistID        uuid.UUID
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// VenueDetail is the view-model for the venue page: flattened genre names and
// the venue's shows partitioned into past and upcoming at query time.
type VenueDetail struct {
	ID                 uuid.UUID
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
	Genres             []string
	PastShows          []VenueShow
	UpcomingShows      []VenueShow
	PastShowsCount     int
	UpcomingShowsCount int
}

// SearchRow is one search hit, annotated with its upcoming-show count.
type SearchRow struct {
	ID               uuid.UUID
	Name             string
	NumUpcomingShows int
}

// SearchResult holds the hits for one search term.
type SearchResult struct {
	Count int
	Data  []SearchRow
}

// CityGroup is one distinct (city, state) area and the venues in it that have
// at least one upcoming show.
type CityGroup struct {
	City   string
	State  string
	Venues []SearchRow
}

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// List returns venues in insertion order, at most limit rows when limit > 0.
func (r *VenueRepository) List(ctx context.Context, limit int) ([]models.Venue, error) {
	query := r.db.WithContext(ctx).Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var venues []models.Venue
	if err := query.Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Search matches venue names case-insensitively against a substring. An empty
// term matches every venue.
func (r *VenueRepository) Search(ctx context.Context, term string) (*SearchResult, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?)", "%"+term+"%").
		Order("created_at").
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}

	now := time.Now()
	result := &SearchResult{Count: len(venues), Data: []SearchRow{}}
	for _, venue := range venues {
		var upcoming int64
		err := r.db.WithContext(ctx).Model(&models.Show{}).
			Where("venue_id = ? AND start_time >= ?", venue.ID, now).
			Count(&upcoming).Error
		if err != nil {
			return nil, fmt.Errorf("count upcoming shows: %w", err)
		}
		result.Data = append(result.Data, SearchRow{
			ID:               venue.ID,
			Name:             venue.Name,
			NumUpcomingShows: int(upcoming),
		})
	}
	return result, nil
}

// GetByID returns the venue page view-model. The past/upcoming split uses
// start_time >= now as the upcoming boundary.
func (r *VenueRepository) GetByID(ctx context.Context, id uuid.UUID) (*VenueDetail, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).Preload("Genres").Where("id = ?", id).First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}

	var shows []models.Show
	err = r.db.WithContext(ctx).Preload("Artist").
		Where("venue_id = ?", id).
		Order("start_time").
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("get venue shows: %w", err)
	}

	detail := &VenueDetail{
		ID:                 venue.ID,
		Name:               venue.Name,
		City:               venue.City,
		State:              venue.State,
		Address:            venue.Address,
		Phone:              venue.Phone,
		ImageLink:          venue.ImageLink,
		FacebookLink:       venue.FacebookLink,
		Website:            venue.Website,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
		Genres:             []string{},
		PastShows:          []VenueShow{},
		UpcomingShows:      []VenueShow{},
	}
	for _, genre := range venue.Genres {
		detail.Genres = append(detail.Genres, genre.Name)
	}

	now := time.Now()
	for _, show := range shows {
		entry := VenueShow{
			ArtistID:        show.Artist.ID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       show.StartTime,
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

// GroupByCity returns one group per distinct (city, state) pair among venues
// with at least one upcoming show. Within a group, venues are deduplicated by
// name and each entry's NumUpcomingShows counts every upcoming show for that
// name in that city. Keying by name means two same-named venues in one city
// merge into a single entry; that matches the long-standing listing behavior
// and is kept on purpose.
func (r *VenueRepository) GroupByCity(ctx context.Context) ([]CityGroup, error) {
	var shows []models.Show
	err := r.db.WithContext(ctx).Preload("Venue").
		Where("start_time >= ?", time.Now()).
		Order("start_time").
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming shows: %w", err)
	}

	type cityKey struct {
		city  string
		state string
	}
	var order []cityKey
	counts := map[cityKey]map[string]int{}
	firstID := map[cityKey]map[string]uuid.UUID{}
	nameOrder := map[cityKey][]string{}

	for _, show := range shows {
		key := cityKey{city: show.Venue.City, state: show.Venue.State}
		if counts[key] == nil {
			counts[key] = map[string]int{}
			firstID[key] = map[string]uuid.UUID{}
			order = append(order, key)
		}
		if _, seen := counts[key][show.Venue.Name]; !seen {
			firstID[key][show.Venue.Name] = show.Venue.ID
			nameOrder[key] = append(nameOrder[key], show.Venue.Name)
		}
		counts[key][show.Venue.Name]++
	}

	groups := []CityGroup{}
	for _, key := range order {
		group := CityGroup{City: key.city, State: key.state}
		for _, name := range nameOrder[key] {
			group.Venues = append(group.Venues, SearchRow{
				ID:               firstID[key][name],
				Name:             name,
				NumUpcomingShows: counts[key][name],
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Create inserts the venue and its genre rows as one transaction.
func (r *VenueRepository) Create(ctx context.Context, input VenueInput) (*models.Venue, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	venue := models.Venue{
		Name:               input.Name,
		City:               input.City,
		State:              input.State,
		Address:            input.Address,
		Phone:              input.Phone,
		ImageLink:          input.ImageLink,
		FacebookLink:       input.FacebookLink,
		Website:            input.Website,
		SeekingTalent:      input.SeekingTalent,
		SeekingDescription: input.SeekingDescription,
	}
	for _, name := range input.Genres {
		venue.Genres = append(venue.Genres, models.VenueGenre{Name: name})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&venue).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return &venue, nil
}

// Update overwrites every venue field from the input and replaces the whole
// genre set, as one transaction.
func (r *VenueRepository) Update(ctx context.Context, id uuid.UUID, input VenueInput) (*models.Venue, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var venue models.Venue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&venue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		venue.Name = input.Name
		venue.City = input.City
		venue.State = input.State
		venue.Address = input.Address
		venue.Phone = input.Phone
		venue.ImageLink = input.ImageLink
		venue.FacebookLink = input.FacebookLink
		venue.Website = input.Website
		venue.SeekingTalent = input.SeekingTalent
		venue.SeekingDescription = input.SeekingDescription

		if err := tx.Save(&venue).Error; err != nil {
			return err
		}

		if err := tx.Where("venue_id = ?", id).Delete(&models.VenueGenre{}).Error; err != nil {
			return err
		}
		for _, name := range input.Genres {
			genre := models.VenueGenre{Name: name, VenueID: id}
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
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return &venue, nil
}

// Delete removes the venue's genre rows and then the venue row, as one
// transaction. Shows referencing the venue are not touched.
func (r *VenueRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&venue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&models.VenueGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete venue: %w", err)
	}
	return &venue, nil
}
