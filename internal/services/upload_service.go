package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/thumbnail"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Upload stages reported with per-file failures.
const (
	StageRead      = "read"
	StageValidate  = "validate"
	StageThumbnail = "thumbnail"
	StageUpload    = "upload"
	StageDatabase  = "database"
)

// UploadFile is one file of a multipart upload. Open is called from a worker
// goroutine.
type UploadFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type UploadError struct {
	Filename string
	Stage    string
	Err      error
}

func (e UploadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Filename, e.Stage, e.Err)
}

// UploadResult holds the photos that made it and the files that did not.
// Photos keep the order of the input files.
type UploadResult struct {
	Photos []models.Photo
	Errors []UploadError
}

type UploadOptions struct {
	MaxFileSize   int64
	Concurrency   int
	ThumbnailSize int
}

type UploadService struct {
	store     GalleryStore
	objects   ObjectStore
	publisher Publisher
	opts      UploadOptions
	logger    *zap.Logger
}

func NewUploadService(store GalleryStore, objects ObjectStore, publisher Publisher, opts UploadOptions, logger *zap.Logger) *UploadService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &UploadService{store: store, objects: objects, publisher: publisher, opts: opts, logger: logger}
}

// Upload stores every file of the batch concurrently. A failing file does not
// stop the others and successful files are kept.
func (s *UploadService) Upload(ctx context.Context, userID, galleryID uuid.UUID, files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if _, err := s.store.GetGallery(ctx, galleryID, userID); err != nil {
		return nil, err
	}

	base, err := s.store.NextOrderIndex(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	photos := make([]*models.Photo, len(files))
	var (
		mu     sync.Mutex
		failed []UploadError
	)

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			photo, uerr := s.uploadOne(ctx, userID, galleryID, base+i, file)
			if uerr != nil {
				s.logger.Warn("photo upload failed",
					zap.String("gallery_id", galleryID.String()),
					zap.String("filename", uerr.Filename),
					zap.String("stage", uerr.Stage),
					zap.Error(uerr.Err))
				mu.Lock()
				failed = append(failed, *uerr)
				mu.Unlock()
				return nil
			}
			photos[i] = photo
			return nil
		})
	}
	g.Wait()

	result := &UploadResult{Photos: make([]models.Photo, 0, len(files)), Errors: failed}
	for _, p := range photos {
		if p != nil {
			result.Photos = append(result.Photos, *p)
		}
	}

	if len(result.Photos) > 0 {
		first := result.Photos[0]
		cover := first.FileURL
		if first.ThumbnailURL.Valid {
			cover = first.ThumbnailURL.String
		}
		if err := s.store.SetCoverImageIfEmpty(ctx, galleryID, cover); err != nil {
			s.logger.Warn("failed to set cover image", zap.Error(err), zap.String("gallery_id", galleryID.String()))
		}
		s.publisher.Publish(galleryID, realtime.EventPhotosUploaded,
			realtime.PhotosUploadedPayload(len(result.Photos), len(result.Errors)))
	}

	return result, nil
}

func (s *UploadService) uploadOne(ctx context.Context, userID, galleryID uuid.UUID, orderIndex int, file UploadFile) (*models.Photo, *UploadError) {
	fail := func(stage string, err error) *UploadError {
		return &UploadError{Filename: file.Filename, Stage: stage, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(StageRead, err)
	}
	if s.opts.MaxFileSize > 0 && file.Size > s.opts.MaxFileSize {
		return nil, fail(StageValidate, fmt.Errorf("file exceeds %d bytes", s.opts.MaxFileSize))
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fail(StageRead, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fail(StageRead, err)
	}

	contentType, ext, err := thumbnail.Sniff(data)
	if err != nil {
		return nil, fail(StageValidate, err)
	}

	thumb, err := thumbnail.Generate(data, s.opts.ThumbnailSize)
	if err != nil {
		return nil, fail(StageThumbnail, err)
	}

	id := uuid.New()
	prefix := fmt.Sprintf("%s/%s", userID, galleryID)
	originalPath := fmt.Sprintf("%s/originals/%s%s", prefix, id, ext)
	thumbPath := fmt.Sprintf("%s/thumbnails/%s.jpg", prefix, id)

	fileURL, err := s.objects.Upload(ctx, originalPath, data, contentType)
	if err != nil {
		return nil, fail(StageUpload, err)
	}
	thumbURL, err := s.objects.Upload(ctx, thumbPath, thumb, thumbnail.ContentType)
	if err != nil {
		return nil, fail(StageUpload, err)
	}

	photo := &models.Photo{
		ID:           id,
		GalleryID:    galleryID,
		FileURL:      fileURL,
		ThumbnailURL: sql.NullString{String: thumbURL, Valid: true},
		FileName:     filepath.Base(file.Filename),
		FileSize:     sql.NullInt64{Int64: int64(len(data)), Valid: true},
		OrderIndex:   orderIndex,
		StoragePath:  originalPath,
	}
	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		return nil, fail(StageDatabase, err)
	}
	return photo, nil
}
