package server

import (
	"fmt"
	"os"

	"github.com/andrianrf/gigbook/config"
	"github.com/andrianrf/gigbook/internal/handlers"
	"github.com/andrianrf/gigbook/internal/helpers"
	"github.com/andrianrf/gigbook/internal/middleware"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := NewRouter(db, cfg.SessionSecret, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("port", port))
	return r.Run(":" + port)
}

// NewRouter builds the gin engine with templates, session store and routes.
func NewRouter(db *gorm.DB, sessionSecret string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("error", recovered))
		helpers.RenderServerError(c)
		c.Abort()
	}))

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("gigbook_session", store))
	r.Use(middleware.DatabaseMiddleware(db))

	r.LoadHTMLGlob("web/templates/**/*.html")
	r.NoRoute(func(c *gin.Context) {
		helpers.RenderNotFound(c)
	})

	setupRoutes(r)
	return r
}

func setupRoutes(r *gin.Engine) {
	r.GET("/", handlers.Home)

	venues := r.Group("/venues")
	{
		venues.GET("", handlers.ListVenues)
		venues.POST("/search", handlers.SearchVenues)
		venues.GET("/create", handlers.CreateVenueForm)
		venues.POST("/create", handlers.CreateVenue)
		venues.GET("/:id", handlers.GetVenue)
		venues.POST("/:id", handlers.DeleteVenue)
		venues.DELETE("/:id", handlers.DeleteVenue)
		venues.GET("/:id/edit", handlers.EditVenueForm)
		venues.POST("/:id/edit", handlers.UpdateVenue)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.POST("/search", handlers.SearchArtists)
		artists.GET("/create", handlers.CreateArtistForm)
		artists.POST("/create", handlers.CreateArtist)
		artists.GET("/:id", handlers.GetArtist)
		artists.GET("/:id/edit", handlers.EditArtistForm)
		artists.POST("/:id/edit", handlers.UpdateArtist)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", handlers.ListShows)
		shows.GET("/create", handlers.CreateShowForm)
		shows.POST("/create", handlers.CreateShow)
	}
}
