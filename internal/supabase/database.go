package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fotoproof-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting user.
var ErrNotFound = errors.New("not found")

const galleryColumns = `id, user_id, title, description, client_name, client_email, password,
	is_public, expires_at, cover_image_url, created_at, updated_at`

const photoColumns = `id, gallery_id, file_url, thumbnail_url, file_name, file_size,
	order_index, storage_path, created_at`

// DatabaseClient talks to the Supabase Postgres database directly. It is used
// for the tables the API owns: galleries, photos and client_selections.
type DatabaseClient struct {
	db *sqlx.DB
}

func NewDatabaseClient(db *sqlx.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) CreateGallery(ctx context.Context, g *models.Gallery) error {
	err := d.db.GetContext(ctx, g, `
		INSERT INTO galleries (id, user_id, title, description, client_name, client_email, password, is_public, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+galleryColumns,
		g.ID, g.UserID, g.Title, g.Description, g.ClientName, g.ClientEmail, g.Password, g.IsPublic, g.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gallery: %w", err)
	}
	return nil
}

// GetGallery loads a gallery owned by userID.
func (d *DatabaseClient) GetGallery(ctx context.Context, galleryID, userID uuid.UUID) (*models.Gallery, error) {
	var g models.Gallery
	err := d.db.GetContext(ctx, &g, `
		SELECT `+galleryColumns+`
		FROM galleries
		WHERE id = $1 AND user_id = $2
	`, galleryID, userID)
	if err != nil {
		return nil, wrapNotFound("failed to get gallery", err)
	}
	return &g, nil
}

// GetGalleryByID loads a gallery regardless of owner. Callers decide whether
// the visitor may see it.
func (d *DatabaseClient) GetGalleryByID(ctx context.Context, galleryID uuid.UUID) (*models.Gallery, error) {
	var g models.Gallery
	err := d.db.GetContext(ctx, &g, `
		SELECT `+galleryColumns+`
		FROM galleries
		WHERE id = $1
	`, galleryID)
	if err != nil {
		return nil, wrapNotFound("failed to get gallery", err)
	}
	return &g, nil
}

func (d *DatabaseClient) ListGalleries(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error) {
	galleries := []models.Gallery{}
	err := d.db.SelectContext(ctx, &galleries, `
		SELECT `+galleryColumns+`
		FROM galleries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, nil
}

func (d *DatabaseClient) UpdateGallerySettings(ctx context.Context, galleryID, userID uuid.UUID, s models.GallerySettings) (*models.Gallery, error) {
	var g models.Gallery
	err := d.db.GetContext(ctx, &g, `
		UPDATE galleries
		SET is_public = $1, password = $2, expires_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING `+galleryColumns,
		s.IsPublic, s.Password, s.ExpiresAt, galleryID, userID,
	)
	if err != nil {
		return nil, wrapNotFound("failed to update gallery settings", err)
	}
	return &g, nil
}

// SetCoverImageIfEmpty sets the gallery cover unless one is already set.
func (d *DatabaseClient) SetCoverImageIfEmpty(ctx context.Context, galleryID uuid.UUID, url string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE galleries
		SET cover_image_url = $1
		WHERE id = $2 AND cover_image_url IS NULL
	`, url, galleryID)
	if err != nil {
		return fmt.Errorf("failed to set cover image: %w", err)
	}
	return nil
}

func (d *DatabaseClient) DeleteGallery(ctx context.Context, galleryID, userID uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `
		DELETE FROM galleries
		WHERE id = $1 AND user_id = $2
	`, galleryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseClient) CreatePhoto(ctx context.Context, p *models.Photo) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO photos (id, gallery_id, file_url, thumbnail_url, file_name, file_size, order_index, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, p.ID, p.GalleryID, p.FileURL, p.ThumbnailURL, p.FileName, p.FileSize, p.OrderIndex, p.StoragePath,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// ListPhotos returns a gallery's photos, newest first.
func (d *DatabaseClient) ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := d.db.SelectContext(ctx, &photos, `
		SELECT `+photoColumns+`
		FROM photos
		WHERE gallery_id = $1
		ORDER BY created_at DESC, order_index DESC
	`, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// NextOrderIndex is the order_index the next uploaded photo should take.
func (d *DatabaseClient) NextOrderIndex(ctx context.Context, galleryID uuid.UUID) (int, error) {
	var next int
	err := d.db.GetContext(ctx, &next, `
		SELECT COALESCE(MAX(order_index) + 1, 0)
		FROM photos
		WHERE gallery_id = $1
	`, galleryID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next order index: %w", err)
	}
	return next, nil
}

// ReplaceSelections swaps a client's picks for a gallery: every previous row
// for (gallery_id, client_email) is deleted and the given rows are inserted,
// all in one transaction.
func (d *DatabaseClient) ReplaceSelections(ctx context.Context, galleryID uuid.UUID, clientEmail string, rows []models.ClientSelection) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM client_selections
		WHERE gallery_id = $1 AND client_email = $2
	`, galleryID, clientEmail); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete previous selections: %w", err)
	}

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO client_selections (id, gallery_id, photo_id, client_name, client_email, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, row.ID, galleryID, row.PhotoID, row.ClientName, clientEmail, row.Notes); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selections: %w", err)
	}
	return nil
}

// ListSelections returns every client selection of a gallery joined with its
// photo, in arrival order.
func (d *DatabaseClient) ListSelections(ctx context.Context, galleryID uuid.UUID) ([]models.SelectionWithPhoto, error) {
	selections := []models.SelectionWithPhoto{}
	err := d.db.SelectContext(ctx, &selections, `
		SELECT cs.id, cs.gallery_id, cs.photo_id, cs.client_name, cs.client_email, cs.notes, cs.selected_at,
			p.file_name, p.file_url, p.thumbnail_url, p.order_index
		FROM client_selections cs
		JOIN photos p ON p.id = cs.photo_id
		WHERE cs.gallery_id = $1
		ORDER BY cs.selected_at ASC, p.order_index ASC
	`, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	return selections, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func wrapNotFound(msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
