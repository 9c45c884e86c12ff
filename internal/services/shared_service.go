package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/proofing"
	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/supabase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SharedGallery is what a visitor sees before passing the gate. Access is set
// when the gallery has no password.
type SharedGallery struct {
	Gallery *models.Gallery
	Access  *ShareAccess
}

// Visitor is an authenticated share link session, taken from the claims of a
// gallery access token.
type Visitor struct {
	GalleryID uuid.UUID
	SessionID string
	ExpiresAt time.Time
}

// VisitorFromClaims converts verified claims into a Visitor.
func VisitorFromClaims(claims *ShareClaims) (Visitor, error) {
	galleryID, err := claims.GalleryID()
	if err != nil {
		return Visitor{}, ErrInvalidAccessToken
	}
	v := Visitor{GalleryID: galleryID, SessionID: claims.SessionID}
	if claims.ExpiresAt != nil {
		v.ExpiresAt = claims.ExpiresAt.Time
	}
	return v, nil
}

// SubmitInput is a visitor's final pick list. An empty PhotoIDs submits the
// session's draft.
type SubmitInput struct {
	ClientName  string
	ClientEmail string
	PhotoIDs    []uuid.UUID
	Notes       string
}

// SharedService serves the client side of a share link: the password gate,
// browsing, the draft selection and submission.
type SharedService struct {
	store     GalleryStore
	tokens    *ShareTokenService
	drafts    *DraftStore
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewSharedService(store GalleryStore, tokens *ShareTokenService, drafts *DraftStore, publisher Publisher, logger *zap.Logger) *SharedService {
	return &SharedService{
		store:     store,
		tokens:    tokens,
		drafts:    drafts,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Open resolves a share link. A gallery without a password is unlocked
// straight away.
func (s *SharedService) Open(ctx context.Context, galleryID uuid.UUID) (*SharedGallery, error) {
	g, err := s.available(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	shared := &SharedGallery{Gallery: g}
	if !g.HasPassword() {
		access, err := s.tokens.Issue(g.ID)
		if err != nil {
			return nil, err
		}
		shared.Access = access
	}
	return shared, nil
}

// Unlock checks the visitor's password and issues an access token.
func (s *SharedService) Unlock(ctx context.Context, galleryID uuid.UUID, password string) (*ShareAccess, error) {
	if password == "" {
		return nil, proofing.ErrPasswordRequired
	}

	g, err := s.available(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	if err := proofing.CheckPassword(g, password); err != nil {
		return nil, err
	}
	return s.tokens.Issue(g.ID)
}

// Photos lists the gallery's photos for a visitor.
func (s *SharedService) Photos(ctx context.Context, v Visitor) ([]models.Photo, error) {
	if _, err := s.available(ctx, v.GalleryID); err != nil {
		return nil, err
	}
	return s.store.ListPhotos(ctx, v.GalleryID)
}

func (s *SharedService) Draft(v Visitor) []string {
	return s.drafts.Get(v.SessionID, v.GalleryID.String())
}

// ToggleDraft flips one photo in the visitor's draft selection.
func (s *SharedService) ToggleDraft(ctx context.Context, v Visitor, photoID uuid.UUID) ([]string, bool, error) {
	if _, err := s.available(ctx, v.GalleryID); err != nil {
		return nil, false, err
	}
	if err := s.checkPhotos(ctx, v.GalleryID, []uuid.UUID{photoID}); err != nil {
		return nil, false, err
	}

	ids, selected := s.drafts.Toggle(v.SessionID, v.GalleryID.String(), photoID.String(), v.ExpiresAt)
	return ids, selected, nil
}

// Submit replaces every earlier pick of in.ClientEmail for the gallery with
// the given photos, then notifies the owner and drops the draft.
func (s *SharedService) Submit(ctx context.Context, v Visitor, in SubmitInput) (int, error) {
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return 0, ErrClientNameRequired
	}

	photoIDs := in.PhotoIDs
	if len(photoIDs) == 0 {
		for _, id := range s.drafts.Get(v.SessionID, v.GalleryID.String()) {
			parsed, err := uuid.Parse(id)
			if err != nil {
				continue
			}
			photoIDs = append(photoIDs, parsed)
		}
	}
	photoIDs = dedupe(photoIDs)
	if len(photoIDs) == 0 {
		return 0, ErrNoPhotosSelected
	}

	if _, err := s.available(ctx, v.GalleryID); err != nil {
		return 0, err
	}
	if err := s.checkPhotos(ctx, v.GalleryID, photoIDs); err != nil {
		return 0, err
	}

	clientEmail := strings.TrimSpace(in.ClientEmail)
	notes := nullString(in.Notes)

	rows := make([]models.ClientSelection, 0, len(photoIDs))
	for _, photoID := range photoIDs {
		rows = append(rows, models.ClientSelection{
			ID:          uuid.New(),
			GalleryID:   v.GalleryID,
			PhotoID:     photoID,
			ClientName:  clientName,
			ClientEmail: clientEmail,
			Notes:       notes,
		})
	}

	if err := s.store.ReplaceSelections(ctx, v.GalleryID, clientEmail, rows); err != nil {
		return 0, err
	}

	s.drafts.Clear(v.SessionID)
	s.publisher.Publish(v.GalleryID, realtime.EventSelectionSubmitted,
		realtime.SelectionSubmittedPayload(clientName, clientEmail, len(rows)))

	s.logger.Info("selections submitted",
		zap.String("gallery_id", v.GalleryID.String()),
		zap.String("client_email", clientEmail),
		zap.Int("count", len(rows)))

	return len(rows), nil
}

// available loads the gallery and applies the share link rules. Missing
// rows and private galleries look the same to a visitor.
func (s *SharedService) available(ctx context.Context, galleryID uuid.UUID) (*models.Gallery, error) {
	g, err := s.store.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, proofing.ErrGalleryNotFound
		}
		return nil, err
	}
	if err := proofing.CheckAvailability(g, s.now()); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *SharedService) checkPhotos(ctx context.Context, galleryID uuid.UUID, ids []uuid.UUID) error {
	photos, err := s.store.ListPhotos(ctx, galleryID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]struct{}, len(photos))
	for _, p := range photos {
		known[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return ErrPhotoNotInGallery
		}
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
