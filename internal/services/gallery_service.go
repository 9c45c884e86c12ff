package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/proofing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GalleryService covers the photographer side: gallery CRUD, photo listing
// and reviewing client selections.
type GalleryService struct {
	store   GalleryStore
	objects ObjectStore
	logger  *zap.Logger
}

func NewGalleryService(store GalleryStore, objects ObjectStore, logger *zap.Logger) *GalleryService {
	return &GalleryService{store: store, objects: objects, logger: logger}
}

func (s *GalleryService) Create(ctx context.Context, userID uuid.UUID, req models.CreateGalleryRequest) (*models.Gallery, error) {
	g := &models.Gallery{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: nullString(req.Description),
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		Password:    passwordValue(req.Password),
		IsPublic:    req.IsPublic,
		ExpiresAt:   nullTime(req.ExpiresAt),
	}
	if err := s.store.CreateGallery(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GalleryService) List(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error) {
	return s.store.ListGalleries(ctx, userID)
}

func (s *GalleryService) Get(ctx context.Context, userID, galleryID uuid.UUID) (*models.Gallery, error) {
	return s.store.GetGallery(ctx, galleryID, userID)
}

// UpdateSettings replaces the sharing settings. An empty password or a nil
// expiry clears that setting.
func (s *GalleryService) UpdateSettings(ctx context.Context, userID, galleryID uuid.UUID, req models.UpdateGallerySettingsRequest) (*models.Gallery, error) {
	return s.store.UpdateGallerySettings(ctx, galleryID, userID, models.GallerySettings{
		IsPublic:  req.IsPublic,
		Password:  passwordValue(req.Password),
		ExpiresAt: nullTime(req.ExpiresAt),
	})
}

// Delete removes the gallery's stored objects and then the row. Photos and
// selections go with it through the foreign key cascade.
func (s *GalleryService) Delete(ctx context.Context, userID, galleryID uuid.UUID) error {
	if _, err := s.store.GetGallery(ctx, galleryID, userID); err != nil {
		return err
	}

	prefix := fmt.Sprintf("%s/%s", userID, galleryID)
	if err := s.objects.DeletePrefix(ctx, prefix); err != nil {
		s.logger.Warn("failed to delete gallery objects",
			zap.Error(err),
			zap.String("gallery_id", galleryID.String()),
			zap.String("prefix", prefix))
	}

	return s.store.DeleteGallery(ctx, galleryID, userID)
}

func (s *GalleryService) Photos(ctx context.Context, userID, galleryID uuid.UUID) ([]models.Photo, error) {
	if _, err := s.store.GetGallery(ctx, galleryID, userID); err != nil {
		return nil, err
	}
	return s.store.ListPhotos(ctx, galleryID)
}

// Selections returns the gallery's client selections grouped by client email,
// clients in order of their first pick.
func (s *GalleryService) Selections(ctx context.Context, userID, galleryID uuid.UUID) ([]proofing.Group[models.SelectionWithPhoto], error) {
	if _, err := s.store.GetGallery(ctx, galleryID, userID); err != nil {
		return nil, err
	}
	rows, err := s.store.ListSelections(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	return proofing.GroupByEmail(rows, func(r models.SelectionWithPhoto) string {
		return r.ClientEmail
	}), nil
}

// ExportFilter picks the photos to export. PhotoIDs wins over ClientEmail;
// with neither set every selected photo is exported once.
type ExportFilter struct {
	ClientEmail string
	PhotoIDs    []uuid.UUID
}

// ExportFileNames resolves the filter to the original file names of the
// matching photos.
func (s *GalleryService) ExportFileNames(ctx context.Context, userID, galleryID uuid.UUID, filter ExportFilter) ([]string, error) {
	if _, err := s.store.GetGallery(ctx, galleryID, userID); err != nil {
		return nil, err
	}

	if len(filter.PhotoIDs) > 0 {
		photos, err := s.store.ListPhotos(ctx, galleryID)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]string, len(photos))
		for _, p := range photos {
			byID[p.ID] = p.FileName
		}
		names := make([]string, 0, len(filter.PhotoIDs))
		for _, id := range filter.PhotoIDs {
			name, ok := byID[id]
			if !ok {
				return nil, ErrPhotoNotInGallery
			}
			names = append(names, name)
		}
		return names, nil
	}

	rows, err := s.store.ListSelections(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if filter.ClientEmail != "" && !strings.EqualFold(r.ClientEmail, filter.ClientEmail) {
			continue
		}
		if _, dup := seen[r.PhotoID]; dup {
			continue
		}
		seen[r.PhotoID] = struct{}{}
		names = append(names, r.FileName)
	}
	return names, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// passwordValue keeps the password byte for byte; only "" means none.
func passwordValue(p string) sql.NullString {
	return sql.NullString{String: p, Valid: p != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
