// @title           FotoProof API
// @version         1.0.0
// @description     Backend API for photo proofing: photographers share galleries, clients pick their favourite photos.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Supabase JWT.

// @securityDefinitions.apikey GalleryAccess
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the gallery access token.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fotoproof-backend/docs"
	"fotoproof-backend/internal/config"
	"fotoproof-backend/internal/database"
	"fotoproof-backend/internal/logging"
	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/server"
	"fotoproof-backend/internal/services"
	"fotoproof-backend/internal/storage"
	"fotoproof-backend/internal/supabase"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var skipMigrations bool

var rootCmd = &cobra.Command{
	Use:           "fotoproof",
	Short:         "FotoProof photo proofing API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required to run migrations")
	}

	ctx := cmd.Context()
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.NewMigrator(db, logger).Run(ctx); err != nil {
		return err
	}
	logger.Info("migrations completed successfully")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if !skipMigrations {
		if err := database.NewMigrator(db, logger).Run(ctx); err != nil {
			return err
		}
		logger.Info("migrations completed successfully")
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	objects, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("object storage ready", zap.String("backend", cfg.StorageBackend))

	dbClient := supabase.NewDatabaseClient(db)
	hub := realtime.NewHub(logger)
	drafts := services.NewDraftStore()
	tokens := services.NewShareTokenService(cfg.ShareTokenSecret, cfg.ShareTokenTTL)

	galleries := services.NewGalleryService(dbClient, objects, logger)
	uploads := services.NewUploadService(dbClient, objects, hub, services.UploadOptions{
		MaxFileSize:   cfg.MaxUploadSize,
		Concurrency:   cfg.UploadConcurrency,
		ThumbnailSize: cfg.ThumbnailSize,
	}, logger)
	shared := services.NewSharedService(dbClient, tokens, drafts, hub, logger)

	router := server.NewRouter(server.Dependencies{
		Config:    cfg,
		Logger:    logger,
		DB:        dbClient,
		Auth:      newAuthClient(cfg, supabaseClient),
		Profiles:  supabase.NewProfileClient(supabaseClient),
		Galleries: galleries,
		Uploads:   uploads,
		Shared:    shared,
		Tokens:    tokens,
		Hub:       hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		drafts.Run(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newObjectStore(ctx context.Context, cfg *config.Config) (services.ObjectStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMinIO:
		client, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client, nil
	default:
		return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket), nil
	}
}

// newAuthClient talks to the project's auth endpoint unless SUPABASE_AUTH_URL
// points at a separate GoTrue server.
func newAuthClient(cfg *config.Config, client *supabase.Client) *supabase.AuthClient {
	if cfg.SupabaseAuthURL != "" {
		return supabase.NewAuthClientWithURL(cfg.SupabaseAuthURL, cfg.SupabasePublishableKey)
	}
	return supabase.NewAuthClient(client)
}
