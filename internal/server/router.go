// Package server assembles the HTTP router.
package server

import (
	"time"

	"fotoproof-backend/internal/config"
	"fotoproof-backend/internal/handlers"
	"fotoproof-backend/internal/logging"
	"fotoproof-backend/internal/middleware"
	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        handlers.Pinger
	Auth      handlers.Authenticator
	Profiles  handlers.ProfileStore
	Galleries *services.GalleryService
	Uploads   *services.UploadService
	Shared    *services.SharedService
	Tokens    *services.ShareTokenService
	Hub       *realtime.Hub
}

func NewRouter(d Dependencies) *gin.Engine {
	cfg := d.Config

	router := gin.New()
	router.Use(logging.GinLogger(d.Logger))
	router.Use(logging.GinRecovery(d.Logger))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := handlers.NewAuthHandler(d.Auth)
	profilesHandler := handlers.NewProfilesHandler(d.Profiles, d.Galleries, cfg.ShareURL, d.Logger)
	galleriesHandler := handlers.NewGalleriesHandler(d.Galleries, cfg.ShareURL)
	photosHandler := handlers.NewPhotosHandler(d.Uploads, d.Galleries, cfg.MaxUploadSize)
	selectionsHandler := handlers.NewSelectionsHandler(d.Galleries)
	sharedHandler := handlers.NewSharedHandler(d.Shared)
	liveHandler := handlers.NewLiveHandler(d.Hub, d.Galleries, cfg.CORSOrigins, d.Logger)

	api := router.Group("/api/v1")

	api.GET("/health", handlers.HealthHandler(d.DB))

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/verify", authHandler.Verify)

	// Share links: the summary and the password gate are open, everything
	// else needs the gallery access token.
	shared := api.Group("/shared/:gallery_id")
	shared.GET("", sharedHandler.GetSharedGallery)
	shared.POST("/access", sharedHandler.Access)

	visitor := shared.Group("")
	visitor.Use(middleware.ShareAccess(d.Tokens))
	visitor.GET("/photos", sharedHandler.ListPhotos)
	visitor.GET("/draft", sharedHandler.GetDraft)
	visitor.POST("/draft/toggle", sharedHandler.ToggleDraft)
	visitor.POST("/selections", sharedHandler.SubmitSelections)

	owner := api.Group("")
	owner.Use(middleware.AuthMiddleware(cfg))

	owner.GET("/dashboard", profilesHandler.Dashboard)
	owner.GET("/profile", profilesHandler.GetProfile)
	owner.PUT("/profile", profilesHandler.UpdateProfile)

	owner.POST("/galleries", galleriesHandler.CreateGallery)
	owner.GET("/galleries", galleriesHandler.ListGalleries)
	owner.GET("/galleries/:id", galleriesHandler.GetGallery)
	owner.PATCH("/galleries/:id/settings", galleriesHandler.UpdateSettings)
	owner.DELETE("/galleries/:id", galleriesHandler.DeleteGallery)

	owner.POST("/galleries/:id/photos", photosHandler.Upload)
	owner.GET("/galleries/:id/photos", photosHandler.ListPhotos)

	owner.GET("/galleries/:id/selections", selectionsHandler.ListSelections)
	owner.GET("/galleries/:id/selections/export", selectionsHandler.Export)

	owner.GET("/galleries/:id/live", liveHandler.Live)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
