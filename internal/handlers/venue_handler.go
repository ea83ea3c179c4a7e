package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/andrianrf/gigbook/internal/helpers"
	"github.com/andrianrf/gigbook/internal/middleware"
	"github.com/andrianrf/gigbook/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func venueInputFromForm(c *gin.Context) repository.VenueInput {
	return repository.VenueInput{
		Name:               c.PostForm("name"),
		City:               c.PostForm("city"),
		State:              c.PostForm("state"),
		Address:            c.PostForm("address"),
		Phone:              c.PostForm("phone"),
		ImageLink:          c.PostForm("image_link"),
		FacebookLink:       c.PostForm("facebook_link"),
		Website:            c.PostForm("website_link"),
		SeekingTalent:      helpers.ParseCheckbox(c.PostForm("seeking_talent")),
		SeekingDescription: c.PostForm("seeking_description"),
		Genres:             c.PostFormArray("genres"),
	}
}

// ListVenues renders venues grouped by city with upcoming-show counts.
func ListVenues(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	areas, err := repository.NewVenueRepository(db).GroupByCity(c.Request.Context())
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/venues.html", gin.H{
		"areas":   areas,
		"flashes": helpers.Flashes(c),
	})
}

// SearchVenues matches venue names against a case-insensitive substring.
func SearchVenues(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	term := c.PostForm("search_term")
	results, err := repository.NewVenueRepository(db).Search(c.Request.Context(), term)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/search_venues.html", gin.H{
		"results":     results,
		"search_term": term,
	})
}

// GetVenue renders the venue page with its past and upcoming shows.
func GetVenue(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	venue, err := repository.NewVenueRepository(db).GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/show_venue.html", gin.H{
		"venue":   venue,
		"flashes": helpers.Flashes(c),
	})
}

// CreateVenueForm renders the blank venue form.
func CreateVenueForm(c *gin.Context) {
	c.HTML(http.StatusOK, "forms/new_venue.html", gin.H{
		"genres": helpers.GenreChoices,
		"states": helpers.StateChoices,
	})
}

// CreateVenue accepts the venue form submission.
func CreateVenue(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	input := venueInputFromForm(c)
	venue, err := repository.NewVenueRepository(db).Create(c.Request.Context(), input)
	if err != nil {
		helpers.Flash(c, fmt.Sprintf("An error occurred. Venue %q could not be listed.", input.Name))
		c.Redirect(http.StatusFound, "/")
		return
	}

	helpers.Flash(c, fmt.Sprintf("Venue %q was successfully listed!", venue.Name))
	c.Redirect(http.StatusFound, "/")
}

// EditVenueForm renders the venue form prefilled from the stored row.
func EditVenueForm(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	venue, err := repository.NewVenueRepository(db).GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "forms/edit_venue.html", gin.H{
		"venue":  venue,
		"genres": helpers.GenreChoices,
		"states": helpers.StateChoices,
	})
}

// UpdateVenue accepts the venue edit submission. Every field is overwritten
// and the genre set is fully replaced.
func UpdateVenue(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	input := venueInputFromForm(c)
	venue, err := repository.NewVenueRepository(db).Update(c.Request.Context(), id, input)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.Flash(c, fmt.Sprintf("Error updating venue %q", input.Name))
		c.Redirect(http.StatusFound, "/venues/"+id.String())
		return
	}

	helpers.Flash(c, fmt.Sprintf("Successfully updated venue %q", venue.Name))
	c.Redirect(http.StatusFound, "/venues/"+id.String())
}

// DeleteVenue removes the venue and its genre rows.
func DeleteVenue(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	venue, err := repository.NewVenueRepository(db).Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.Flash(c, "An error occurred. Venue could not be deleted.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	helpers.Flash(c, fmt.Sprintf("Venue %q deleted successfully", venue.Name))
	c.Redirect(http.StatusFound, "/")
}
