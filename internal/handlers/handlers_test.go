package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/andrianrf/gigbook/internal/middleware"
	"github.com/andrianrf/gigbook/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Venue{},
		&models.Artist{},
		&models.VenueGenre{},
		&models.ArtistGenre{},
		&models.Show{},
	))

	r := gin.New()
	r.Use(sessions.Sessions("gigbook_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.DatabaseMiddleware(db))
	r.LoadHTMLGlob("../../web/templates/**/*.html")

	r.GET("/", Home)
	r.GET("/venues", ListVenues)
	r.POST("/venues/search", SearchVenues)
	r.GET("/venues/create", CreateVenueForm)
	r.POST("/venues/create", CreateVenue)
	r.GET("/venues/:id", GetVenue)
	r.POST("/venues/:id", DeleteVenue)
	r.GET("/venues/:id/edit", EditVenueForm)
	r.POST("/venues/:id/edit", UpdateVenue)
	r.GET("/artists", ListArtists)
	r.POST("/artists/search", SearchArtists)
	r.POST("/artists/create", CreateArtist)
	r.GET("/artists/:id", GetArtist)
	r.GET("/shows", ListShows)
	r.POST("/shows/create", CreateShow)

	return r, db
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedVenue(t *testing.T, db *gorm.DB, name, city string) models.Venue {
	t.Helper()
	venue := models.Venue{
		Name:   name,
		City:   city,
		State:  "CA",
		Genres: []models.VenueGenre{{Name: "Jazz"}},
	}
	require.NoError(t, db.Create(&venue).Error)
	return venue
}

func seedArtist(t *testing.T, db *gorm.DB, name string) models.Artist {
	t.Helper()
	artist := models.Artist{Name: name, City: "San Francisco", State: "CA"}
	require.NoError(t, db.Create(&artist).Error)
	return artist
}

func TestHomePage(t *testing.T) {
	r, db := newTestRouter(t)
	seedVenue(t, db, "The Musical Hop", "San Francisco")
	seedArtist(t, db, "Guns N Petals")

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Musical Hop")
	assert.Contains(t, w.Body.String(), "Guns N Petals")
}

func TestCreateVenueSubmission(t *testing.T) {
	r, db := newTestRouter(t)

	w := postForm(r, "/venues/create", url.Values{
		"name":                {"Test Hall"},
		"city":                {"X"},
		"state":               {"Y"},
		"seeking_talent":      {"yes"},
		"seeking_description": {"Always looking."},
		"genres":              {"Jazz"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var venue models.Venue
	require.NoError(t, db.Preload("Genres").Where("name = ?", "Test Hall").First(&venue).Error)
	assert.True(t, venue.SeekingTalent)
	require.Len(t, venue.Genres, 1)
	assert.Equal(t, "Jazz", venue.Genres[0].Name)
}

func TestCreateVenueMissingNameStillRedirects(t *testing.T) {
	r, db := newTestRouter(t)

	w := postForm(r, "/venues/create", url.Values{"city": {"X"}, "state": {"Y"}})
	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Venue{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetVenueNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(r, "/venues/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/venues/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVenueDetail(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "The Musical Hop", "San Francisco")

	w := get(r, "/venues/"+venue.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Musical Hop")
	assert.Contains(t, w.Body.String(), "Jazz")
}

func TestSearchVenuesHandler(t *testing.T) {
	r, db := newTestRouter(t)
	seedVenue(t, db, "The Musical Hop", "San Francisco")
	seedVenue(t, db, "The Dueling Pianos Bar", "New York")

	w := postForm(r, "/venues/search", url.Values{"search_term": {"hop"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Musical Hop")
	assert.NotContains(t, w.Body.String(), "Dueling Pianos")
}

func TestDeleteVenueHandler(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "Doomed Venue", "San Francisco")

	w := postForm(r, "/venues/"+venue.ID.String(), url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Venue{}).Where("id = ?", venue.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateVenueHandler(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "Old Name", "San Francisco")

	w := postForm(r, "/venues/"+venue.ID.String()+"/edit", url.Values{
		"name":   {"New Name"},
		"city":   {"Oakland"},
		"state":  {"CA"},
		"genres": {"Blues"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/venues/"+venue.ID.String(), w.Header().Get("Location"))

	var updated models.Venue
	require.NoError(t, db.Preload("Genres").Where("id = ?", venue.ID).First(&updated).Error)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Oakland", updated.City)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "Blues", updated.Genres[0].Name)
}

func TestCreateShowHandler(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "The Musical Hop", "San Francisco")
	artist := seedArtist(t, db, "Guns N Petals")

	start := time.Now().Add(time.Hour).UTC().Format("2006-01-02 15:04:05")
	w := postForm(r, "/shows/create", url.Values{
		"venue_id":   {venue.ID.String()},
		"artist_id":  {artist.ID.String()},
		"start_time": {start},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Show{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateShowHandlerRejectsBadIDs(t *testing.T) {
	r, db := newTestRouter(t)

	w := postForm(r, "/shows/create", url.Values{
		"venue_id":   {"nope"},
		"artist_id":  {"also-nope"},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Show{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateShowHandlerRejectsUnknownIDs(t *testing.T) {
	r, db := newTestRouter(t)

	w := postForm(r, "/shows/create", url.Values{
		"venue_id":   {uuid.NewString()},
		"artist_id":  {uuid.NewString()},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Show{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListShowsHandler(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "The Musical Hop", "San Francisco")
	artist := seedArtist(t, db, "Guns N Petals")
	show := models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&show).Error)

	w := get(r, "/shows")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Musical Hop")
	assert.Contains(t, w.Body.String(), "Guns N Petals")
}

func TestVenuesGroupedPage(t *testing.T) {
	r, db := newTestRouter(t)
	venue := seedVenue(t, db, "The Musical Hop", "San Francisco")
	artist := seedArtist(t, db, "Guns N Petals")
	show := models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&show).Error)

	w := get(r, "/venues")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "San Francisco")
	assert.Contains(t, w.Body.String(), "The Musical Hop")
}
