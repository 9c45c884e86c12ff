package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ClientSelection struct {
	ID          uuid.UUID      `db:"id"`
	GalleryID   uuid.UUID      `db:"gallery_id"`
	PhotoID     uuid.UUID      `db:"photo_id"`
	ClientName  string         `db:"client_name"`
	ClientEmail string         `db:"client_email"`
	Notes       sql.NullString `db:"notes"`
	SelectedAt  time.Time      `db:"selected_at"`
}

// SelectionWithPhoto is a selection row joined with the photo it points at,
// as shown in the owner's review view.
type SelectionWithPhoto struct {
	ClientSelection
	FileName     string         `db:"file_name"`
	FileURL      string         `db:"file_url"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	OrderIndex   int            `db:"order_index"`
}
