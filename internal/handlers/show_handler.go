package handlers

import (
	"fmt"
	"net/http"

	"github.com/andrianrf/gigbook/internal/helpers"
	"github.com/andrianrf/gigbook/internal/middleware"
	"github.com/andrianrf/gigbook/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListShows renders all shows with their venue and artist display fields.
func ListShows(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	shows, err := repository.NewShowRepository(db).List(c.Request.Context())
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/shows.html", gin.H{
		"shows":   shows,
		"flashes": helpers.Flashes(c),
	})
}

// CreateShowForm renders the blank show form.
func CreateShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "forms/new_show.html", gin.H{})
}

// CreateShow accepts the show form submission. The referenced venue and
// artist must already exist; the foreign-key constraints reject the insert
// otherwise.
func CreateShow(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venueID, venueErr := uuid.Parse(c.PostForm("venue_id"))
	artistID, artistErr := uuid.Parse(c.PostForm("artist_id"))
	startTime, timeErr := helpers.ParseStartTime(c.PostForm("start_time"))
	if venueErr != nil || artistErr != nil || timeErr != nil {
		helpers.Flash(c, "An error occurred. Show could not be listed.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	show, err := repository.NewShowRepository(db).Create(c.Request.Context(), venueID, artistID, startTime)
	if err != nil {
		helpers.Flash(c, "An error occurred. Show could not be listed.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	helpers.Flash(c, fmt.Sprintf("Show %q at %q was successfully listed!", show.Artist.Name, show.Venue.Name))
	c.Redirect(http.StatusFound, "/")
}
