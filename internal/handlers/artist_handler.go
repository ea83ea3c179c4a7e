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

func artistInputFromForm(c *gin.Context) repository.ArtistInput {
	return repository.ArtistInput{
		Name:               c.PostForm("name"),
		City:               c.PostForm("city"),
		State:              c.PostForm("state"),
		Phone:              c.PostForm("phone"),
		ImageLink:          c.PostForm("image_link"),
		FacebookLink:       c.PostForm("facebook_link"),
		Website:            c.PostForm("website_link"),
		SeekingVenue:       helpers.ParseCheckbox(c.PostForm("seeking_venue")),
		SeekingDescription: c.PostForm("seeking_description"),
		Genres:             c.PostFormArray("genres"),
	}
}

// ListArtists renders all artists.
func ListArtists(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	artists, err := repository.NewArtistRepository(db).List(c.Request.Context(), 0)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/artists.html", gin.H{
		"artists": artists,
		"flashes": helpers.Flashes(c),
	})
}

// SearchArtists matches artist names against a case-insensitive substring.
func SearchArtists(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	term := c.PostForm("search_term")
	results, err := repository.NewArtistRepository(db).Search(c.Request.Context(), term)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/search_artists.html", gin.H{
		"results":     results,
		"search_term": term,
	})
}

// GetArtist renders the artist page with its past and upcoming shows.
func GetArtist(c *gin.Context) {
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

	artist, err := repository.NewArtistRepository(db).GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/show_artist.html", gin.H{
		"artist":  artist,
		"flashes": helpers.Flashes(c),
	})
}

// CreateArtistForm renders the blank artist form.
func CreateArtistForm(c *gin.Context) {
	c.HTML(http.StatusOK, "forms/new_artist.html", gin.H{
		"genres": helpers.GenreChoices,
		"states": helpers.StateChoices,
	})
}

// CreateArtist accepts the artist form submission.
func CreateArtist(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	input := artistInputFromForm(c)
	artist, err := repository.NewArtistRepository(db).Create(c.Request.Context(), input)
	if err != nil {
		helpers.Flash(c, fmt.Sprintf("An error occurred. Artist %q could not be listed.", input.Name))
		c.Redirect(http.StatusFound, "/")
		return
	}

	helpers.Flash(c, fmt.Sprintf("Artist %q was successfully listed!", artist.Name))
	c.Redirect(http.StatusFound, "/")
}

// EditArtistForm renders the artist form prefilled from the stored row.
func EditArtistForm(c *gin.Context) {
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

	artist, err := repository.NewArtistRepository(db).GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "forms/edit_artist.html", gin.H{
		"artist": artist,
		"genres": helpers.GenreChoices,
		"states": helpers.StateChoices,
	})
}

// UpdateArtist accepts the artist edit submission. Every field is overwritten
// and the genre set is fully replaced.
func UpdateArtist(c *gin.Context) {
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

	input := artistInputFromForm(c)
	artist, err := repository.NewArtistRepository(db).Update(c.Request.Context(), id, input)
	if errors.Is(err, repository.ErrNotFound) {
		helpers.RenderNotFound(c)
		return
	}
	if err != nil {
		helpers.Flash(c, fmt.Sprintf("Error updating artist %q", input.Name))
		c.Redirect(http.StatusFound, "/artists/"+id.String())
		return
	}

	helpers.Flash(c, fmt.Sprintf("Successfully updated artist %q", artist.Name))
	c.Redirect(http.StatusFound, "/artists/"+id.String())
}
