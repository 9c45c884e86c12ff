// Package services holds the proofing workflows that sit between the HTTP
// handlers and the database, object storage and realtime hub.
package services

import (
	"context"
	"errors"

	"fotoproof-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNoPhotosSelected   = errors.New("no photos selected")
	ErrPhotoNotInGallery  = errors.New("photo does not belong to this gallery")
	ErrNoFiles            = errors.New("no files provided")
	ErrInvalidAccessToken = errors.New("invalid gallery access token")
	ErrClientNameRequired = errors.New("client_name is required")
)

// GalleryStore is the persistence the services need. supabase.DatabaseClient
// implements it.
type GalleryStore interface {
	CreateGallery(ctx context.Context, g *models.Gallery) error
	GetGallery(ctx context.Context, galleryID, userID uuid.UUID) (*models.Gallery, error)
	GetGalleryByID(ctx context.Context, galleryID uuid.UUID) (*models.Gallery, error)
	ListGalleries(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error)
	UpdateGallerySettings(ctx context.Context, galleryID, userID uuid.UUID, s models.GallerySettings) (*models.Gallery, error)
	SetCoverImageIfEmpty(ctx context.Context, galleryID uuid.UUID, url string) error
	DeleteGallery(ctx context.Context, galleryID, userID uuid.UUID) error
	CreatePhoto(ctx context.Context, p *models.Photo) error
	ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]models.Photo, error)
	NextOrderIndex(ctx context.Context, galleryID uuid.UUID) (int, error)
	ReplaceSelections(ctx context.Context, galleryID uuid.UUID, clientEmail string, rows []models.ClientSelection) error
	ListSelections(ctx context.Context, galleryID uuid.UUID) ([]models.SelectionWithPhoto, error)
}

// ObjectStore is implemented by supabase.StorageClient and storage.MinIOClient.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// Publisher pushes gallery events to connected owners. realtime.Hub
// implements it.
type Publisher interface {
	Publish(galleryID uuid.UUID, eventType string, payload map[string]interface{})
}
