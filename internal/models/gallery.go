package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Gallery struct {
	ID            uuid.UUID      `db:"id"`
	UserID        uuid.UUID      `db:"user_id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	ClientName    string         `db:"client_name"`
	ClientEmail   string         `db:"client_email"`
	Password      sql.NullString `db:"password"`
	IsPublic      bool           `db:"is_public"`
	ExpiresAt     sql.NullTime   `db:"expires_at"`
	CoverImageURL sql.NullString `db:"cover_image_url"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// HasPassword reports whether visitors must pass the password gate.
func (g *Gallery) HasPassword() bool {
	return g.Password.Valid && g.Password.String != ""
}

// GallerySettings are the sharing settings an owner may change after creation.
type GallerySettings struct {
	IsPublic  bool
	Password  sql.NullString
	ExpiresAt sql.NullTime
}
