package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID           uuid.UUID      `db:"id"`
	GalleryID    uuid.UUID      `db:"gallery_id"`
	FileURL      string         `db:"file_url"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	FileName     string         `db:"file_name"`
	FileSize     sql.NullInt64  `db:"file_size"`
	OrderIndex   int            `db:"order_index"`
	StoragePath  string         `db:"storage_path"`
	CreatedAt    time.Time      `db:"created_at"`
}
