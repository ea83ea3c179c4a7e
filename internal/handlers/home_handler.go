package handlers

import (
	"net/http"

	"github.com/andrianrf/gigbook/internal/helpers"
	"github.com/andrianrf/gigbook/internal/middleware"
	"github.com/andrianrf/gigbook/internal/repository"
	"github.com/gin-gonic/gin"
)

const homeListLimit = 10

// Home lists the first venues and artists on the landing page.
func Home(c *gin.Context) {
	db := middleware.GetDatabase(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venues, err := repository.NewVenueRepository(db).List(c.Request.Context(), homeListLimit)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}
	artists, err := repository.NewArtistRepository(db).List(c.Request.Context(), homeListLimit)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "pages/home.html", gin.H{
		"venues":  venues,
		"artists": artists,
		"flashes": helpers.Flashes(c),
	})
}
