// Package proofing holds the client-side proofing rules: the shared gallery
// gate, the selection set, selection grouping and the filename export formats.
package proofing

import (
	"errors"
	"time"

	"fotoproof-backend/internal/models"
)

var (
	ErrGalleryNotFound  = errors.New("gallery not found or not public")
	ErrGalleryExpired   = errors.New("gallery has expired")
	ErrPasswordRequired = errors.New("password is required")
	ErrWrongPassword    = errors.New("incorrect password")
)

// CheckAvailability decides whether a gallery may be opened through its share
// link at the given instant.
func CheckAvailability(g *models.Gallery, now time.Time) error {
	if g == nil || !g.IsPublic {
		return ErrGalleryNotFound
	}
	if g.ExpiresAt.Valid && g.ExpiresAt.Time.Before(now) {
		return ErrGalleryExpired
	}
	return nil
}

// CheckPassword compares the visitor input with the stored password by exact
// string equality. It is a courtesy gate, not a security boundary.
func CheckPassword(g *models.Gallery, input string) error {
	if !g.HasPassword() {
		return nil
	}
	if input == "" {
		return ErrPasswordRequired
	}
	if input != g.Password.String {
		return ErrWrongPassword
	}
	return nil
}
